package utils

const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00
)

const (
	// Pagination
	FleetPerPage = 8
	ShopPerPage  = 8
	SavesPerPage = 10
)
