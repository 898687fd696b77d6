package sim

import "errors"

var (
	ErrGameOver            = errors.New("company is no longer active")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAircraftNotIdle     = errors.New("aircraft is not idle")
	ErrAircraftRetired     = errors.New("aircraft has been sold")
	ErrAircraftNotInFleet  = errors.New("aircraft does not belong to this company")
	ErrBaseNotOwned        = errors.New("base does not belong to this company")
	ErrOffersExpired       = errors.New("offers are stale, generate new ones")
	ErrNoOffers            = errors.New("no offers available for this aircraft")
	ErrInvalidOfferChoice  = errors.New("invalid offer selection")
	ErrModelNotPurchasable = errors.New("this model is not for sale")
	ErrBaseTierTooLow      = errors.New("no base tier high enough for this model")
	ErrUnknownBaseOption   = errors.New("unknown starting base option")
)
