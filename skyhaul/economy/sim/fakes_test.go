package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/skyhauldev/skyhaul/skyhaul/database/models"
	"github.com/skyhauldev/skyhaul/skyhaul/database/repositories"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/eco"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/gametx"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/offers"
	"github.com/skyhauldev/skyhaul/skyhaul/economy/upgrade"
)

// fakeTx satisfies gametx.Runner without a database. The zero bun.Tx is
// never dereferenced because the fake repositories ignore it. Before the
// closure runs the world state is snapshotted; a failing closure restores
// it, matching the all-or-nothing behavior of the real runner.
type fakeTx struct {
	begin func() (rollback func())
}

func (f fakeTx) WithTransaction(ctx context.Context, _ *gametx.TransactionOptions, fn func(context.Context, bun.Tx) error) error {
	var rollback func()
	if f.begin != nil {
		rollback = f.begin()
	}
	if err := fn(ctx, bun.Tx{}); err != nil {
		if rollback != nil {
			rollback()
		}
		return err
	}
	return nil
}

type fakeSaves struct {
	nextID int64
	byID   map[int64]*models.GameSave
}

func newFakeSaves() *fakeSaves {
	return &fakeSaves{nextID: 1, byID: make(map[int64]*models.GameSave)}
}

func (f *fakeSaves) CreateTx(_ context.Context, _ bun.Tx, save *models.GameSave) error {
	for _, existing := range f.byID {
		if existing.OwnerID == save.OwnerID && existing.CompanyName == save.CompanyName {
			return repositories.ErrCompanyExists
		}
	}
	save.ID = f.nextID
	f.nextID++
	f.byID[save.ID] = save
	return nil
}

func (f *fakeSaves) GetByID(_ context.Context, id int64) (*models.GameSave, error) {
	save, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrSaveNotFound
	}
	copied := *save
	return &copied, nil
}

func (f *fakeSaves) GetByOwnerAndCompany(_ context.Context, ownerID, company string) (*models.GameSave, error) {
	for _, save := range f.byID {
		if save.OwnerID == ownerID && save.CompanyName == company {
			copied := *save
			return &copied, nil
		}
	}
	return nil, repositories.ErrSaveNotFound
}

func (f *fakeSaves) ListByOwner(_ context.Context, ownerID string) ([]*models.GameSave, error) {
	var out []*models.GameSave
	for _, save := range f.byID {
		if save.OwnerID == ownerID {
			copied := *save
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSaves) LockTx(ctx context.Context, _ bun.Tx, id int64) (*models.GameSave, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeSaves) IncrementDayTx(_ context.Context, _ bun.Tx, id int64) (int, error) {
	save, ok := f.byID[id]
	if !ok {
		return 0, repositories.ErrSaveNotFound
	}
	save.CurrentDay++
	return save.CurrentDay, nil
}

func (f *fakeSaves) AddCashTx(_ context.Context, _ bun.Tx, id int64, amount decimal.Decimal) error {
	save, ok := f.byID[id]
	if !ok {
		return repositories.ErrSaveNotFound
	}
	save.Cash = save.Cash.Add(amount.Round(2))
	return nil
}

func (f *fakeSaves) SetStatusTx(_ context.Context, _ bun.Tx, id int64, status string) error {
	save, ok := f.byID[id]
	if !ok {
		return repositories.ErrSaveNotFound
	}
	save.Status = status
	return nil
}

type fakeAircraft struct {
	nextID  int64
	byID    map[int64]*models.Aircraft
	catalog *fakeCatalog
}

func newFakeAircraft(catalog *fakeCatalog) *fakeAircraft {
	return &fakeAircraft{nextID: 1, byID: make(map[int64]*models.Aircraft), catalog: catalog}
}

func (f *fakeAircraft) CreateTx(_ context.Context, _ bun.Tx, aircraft *models.Aircraft) error {
	aircraft.ID = f.nextID
	f.nextID++
	f.byID[aircraft.ID] = aircraft
	return nil
}

func (f *fakeAircraft) GetByID(_ context.Context, id int64) (*models.Aircraft, error) {
	aircraft, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrAircraftNotFound
	}
	copied := *aircraft
	return &copied, nil
}

func (f *fakeAircraft) ListActiveBySave(_ context.Context, saveID int64) ([]*models.Aircraft, error) {
	var out []*models.Aircraft
	for _, aircraft := range f.byID {
		if aircraft.SaveID == saveID && aircraft.Active() {
			copied := *aircraft
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAircraft) ActiveCountsTx(_ context.Context, _ bun.Tx, saveID int64) (int, int, error) {
	starters, others := 0, 0
	for _, aircraft := range f.byID {
		if aircraft.SaveID != saveID || !aircraft.Active() {
			continue
		}
		model := f.catalog.byCode[aircraft.ModelCode]
		if model != nil && model.Category == models.CategoryStarter {
			starters++
		} else {
			others++
		}
	}
	return starters, others, nil
}

func (f *fakeAircraft) MarkBusyTx(_ context.Context, _ bun.Tx, id int64) error {
	aircraft, ok := f.byID[id]
	if !ok || aircraft.Status != models.AircraftStatusIdle {
		return repositories.ErrAircraftNotFound
	}
	aircraft.Status = models.AircraftStatusBusy
	return nil
}

func (f *fakeAircraft) MarkIdleAtTx(_ context.Context, _ bun.Tx, id int64, airportIdent string) error {
	aircraft, ok := f.byID[id]
	if !ok {
		return repositories.ErrAircraftNotFound
	}
	aircraft.Status = models.AircraftStatusIdle
	aircraft.CurrentAirportIdent = airportIdent
	return nil
}

type fakeCatalog struct {
	byCode map[string]*models.AircraftModel
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{byCode: make(map[string]*models.AircraftModel)}
}

func (f *fakeCatalog) GetByCode(_ context.Context, code string) (*models.AircraftModel, error) {
	model, ok := f.byCode[code]
	if !ok {
		return nil, repositories.ErrModelNotFound
	}
	return model, nil
}

func (f *fakeCatalog) ListAll(_ context.Context) ([]*models.AircraftModel, error) {
	var out []*models.AircraftModel
	for _, model := range f.byCode {
		out = append(out, model)
	}
	return out, nil
}

func (f *fakeCatalog) ListPurchasable(_ context.Context, maxTierRank int) ([]*models.AircraftModel, error) {
	var out []*models.AircraftModel
	for _, model := range f.byCode {
		if model.Category == models.CategoryStarter {
			continue
		}
		if models.CategoryRank(model.Category) > maxTierRank {
			continue
		}
		out = append(out, model)
	}
	return out, nil
}

func (f *fakeCatalog) Search(_ context.Context, _ string) ([]*models.AircraftModel, error) {
	return f.ListAll(context.Background())
}

func (f *fakeCatalog) Upsert(_ context.Context, model *models.AircraftModel) error {
	f.byCode[model.ModelCode] = model
	return nil
}

type fakeUpgrades struct {
	byAircraft map[int64][]*models.AircraftUpgrade
}

func newFakeUpgrades() *fakeUpgrades {
	return &fakeUpgrades{byAircraft: make(map[int64][]*models.AircraftUpgrade)}
}

func (f *fakeUpgrades) Latest(_ context.Context, aircraftID int64) (*models.AircraftUpgrade, error) {
	history := f.byAircraft[aircraftID]
	if len(history) == 0 {
		return nil, nil
	}
	return history[len(history)-1], nil
}

func (f *fakeUpgrades) CurrentLevel(ctx context.Context, aircraftID int64) (int, error) {
	latest, err := f.Latest(ctx, aircraftID)
	if err != nil || latest == nil {
		return 0, err
	}
	return latest.Level, nil
}

func (f *fakeUpgrades) AppendTx(_ context.Context, _ bun.Tx, record *models.AircraftUpgrade) error {
	record.ID = int64(len(f.byAircraft[record.AircraftID]) + 1)
	f.byAircraft[record.AircraftID] = append(f.byAircraft[record.AircraftID], record)
	return nil
}

func (f *fakeUpgrades) History(_ context.Context, aircraftID int64) ([]*models.AircraftUpgrade, error) {
	return f.byAircraft[aircraftID], nil
}

type fakeContracts struct {
	nextID int64
	byID   map[int64]*models.Contract
}

func newFakeContracts() *fakeContracts {
	return &fakeContracts{nextID: 1, byID: make(map[int64]*models.Contract)}
}

func (f *fakeContracts) CreateTx(_ context.Context, _ bun.Tx, contract *models.Contract) error {
	contract.ID = f.nextID
	f.nextID++
	f.byID[contract.ID] = contract
	return nil
}

func (f *fakeContracts) GetTx(_ context.Context, _ bun.Tx, id int64) (*models.Contract, error) {
	contract, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrContractNotFound
	}
	copied := *contract
	return &copied, nil
}

func (f *fakeContracts) ResolveTx(_ context.Context, _ bun.Tx, id int64, status string, completedDay int) error {
	contract, ok := f.byID[id]
	if !ok || contract.Status != models.ContractStatusInProgress {
		return repositories.ErrContractNotFound
	}
	contract.Status = status
	contract.CompletedDay = &completedDay
	return nil
}

func (f *fakeContracts) ListBySave(_ context.Context, saveID int64) ([]*models.Contract, error) {
	var out []*models.Contract
	for _, contract := range f.byID {
		if contract.SaveID == saveID {
			copied := *contract
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeFlights struct {
	nextID int64
	byID   map[int64]*models.Flight
}

func newFakeFlights() *fakeFlights {
	return &fakeFlights{nextID: 1, byID: make(map[int64]*models.Flight)}
}

func (f *fakeFlights) CreateTx(_ context.Context, _ bun.Tx, flight *models.Flight) error {
	flight.ID = f.nextID
	f.nextID++
	f.byID[flight.ID] = flight
	return nil
}

func (f *fakeFlights) DueTx(_ context.Context, _ bun.Tx, saveID int64, day int) ([]*models.Flight, error) {
	var out []*models.Flight
	for _, flight := range f.byID {
		if flight.SaveID == saveID && flight.Status == models.FlightStatusEnroute && flight.ArrivalDay <= day {
			copied := *flight
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeFlights) MarkArrivedTx(_ context.Context, _ bun.Tx, id int64) error {
	flight, ok := f.byID[id]
	if !ok || flight.Status != models.FlightStatusEnroute {
		return repositories.ErrFlightNotFound
	}
	flight.Status = models.FlightStatusArrived
	return nil
}

func (f *fakeFlights) CountEnroute(_ context.Context, saveID int64) (int, error) {
	count := 0
	for _, flight := range f.byID {
		if flight.SaveID == saveID && flight.Status == models.FlightStatusEnroute {
			count++
		}
	}
	return count, nil
}

func (f *fakeFlights) ListEnrouteBySave(_ context.Context, saveID int64) ([]*models.Flight, error) {
	var out []*models.Flight
	for _, flight := range f.byID {
		if flight.SaveID == saveID && flight.Status == models.FlightStatusEnroute {
			copied := *flight
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeBases struct {
	nextID   int64
	byID     map[int64]*models.OwnedBase
	upgrades map[int64][]*models.BaseUpgrade
}

func newFakeBases() *fakeBases {
	return &fakeBases{
		nextID:   1,
		byID:     make(map[int64]*models.OwnedBase),
		upgrades: make(map[int64][]*models.BaseUpgrade),
	}
}

func (f *fakeBases) CreateTx(_ context.Context, _ bun.Tx, base *models.OwnedBase) error {
	base.ID = f.nextID
	f.nextID++
	f.byID[base.ID] = base
	return nil
}

func (f *fakeBases) AppendUpgradeTx(_ context.Context, _ bun.Tx, record *models.BaseUpgrade) error {
	record.ID = int64(len(f.upgrades[record.BaseID]) + 1)
	f.upgrades[record.BaseID] = append(f.upgrades[record.BaseID], record)
	return nil
}

func (f *fakeBases) GetByID(_ context.Context, id int64) (*models.OwnedBase, error) {
	base, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrBaseNotFound
	}
	copied := *base
	return &copied, nil
}

func (f *fakeBases) ListBySave(_ context.Context, saveID int64) ([]*models.OwnedBase, error) {
	var out []*models.OwnedBase
	for _, base := range f.byID {
		if base.SaveID == saveID {
			copied := *base
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBases) CurrentTier(_ context.Context, baseID int64) (string, error) {
	history := f.upgrades[baseID]
	if len(history) == 0 {
		return models.BaseTierSmall, nil
	}
	return history[len(history)-1].Tier, nil
}

func (f *fakeBases) BestTier(ctx context.Context, saveID int64) (string, error) {
	best := models.BaseTierSmall
	for _, base := range f.byID {
		if base.SaveID != saveID {
			continue
		}
		tier, err := f.CurrentTier(ctx, base.ID)
		if err != nil {
			return "", err
		}
		if models.BaseTierRank(tier) > models.BaseTierRank(best) {
			best = tier
		}
	}
	return best, nil
}

// world bundles the fakes behind a Session for tests.
type world struct {
	session   *Session
	saves     *fakeSaves
	aircraft  *fakeAircraft
	catalog   *fakeCatalog
	upgrades  *fakeUpgrades
	contracts *fakeContracts
	flights   *fakeFlights
	bases     *fakeBases
	airports  *fakeAirportSource
	cfg       GameConfig
}

type fakeAirportSource struct {
	byIdent map[string]*models.Airport
}

func (f *fakeAirportSource) GetByIdent(_ context.Context, ident string) (*models.Airport, error) {
	airport, ok := f.byIdent[ident]
	if !ok {
		return nil, repositories.ErrAirportNotFound
	}
	return airport, nil
}

func (f *fakeAirportSource) SampleByTypes(_ context.Context, _ []string, exclude string, limit int) ([]*models.Airport, error) {
	var out []*models.Airport
	keys := make([]string, 0, len(f.byIdent))
	for ident := range f.byIdent {
		keys = append(keys, ident)
	}
	sort.Strings(keys)
	for _, ident := range keys {
		if ident == exclude {
			continue
		}
		out = append(out, f.byIdent[ident])
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func floatPtr(v float64) *float64 { return &v }

// newWorld builds a session over empty fakes with a default config.
func newWorld() *world {
	catalog := newFakeCatalog()
	w := &world{
		saves:     newFakeSaves(),
		aircraft:  newFakeAircraft(catalog),
		catalog:   catalog,
		upgrades:  newFakeUpgrades(),
		contracts: newFakeContracts(),
		flights:   newFakeFlights(),
		bases:     newFakeBases(),
		airports: &fakeAirportSource{byIdent: map[string]*models.Airport{
			"EFHK": {Ident: "EFHK", Name: "Helsinki", Type: "large_airport", Latitude: floatPtr(60.3183), Longitude: floatPtr(24.9497)},
			"LFPG": {Ident: "LFPG", Name: "Paris", Type: "large_airport", Latitude: floatPtr(49.0097), Longitude: floatPtr(2.5479)},
			"KJFK": {Ident: "KJFK", Name: "New York", Type: "large_airport", Latitude: floatPtr(40.6398), Longitude: floatPtr(-73.7789)},
		}},
		cfg: NewDefaultGameConfig(),
	}

	w.session = NewSession(w.deps(), w.cfg)

	return w
}

// beginTx snapshots every fake so a failed transaction closure can be
// rolled back wholesale.
func (w *world) beginTx() func() {
	saves := snapshotMap(w.saves.byID)
	aircraft := snapshotMap(w.aircraft.byID)
	contracts := snapshotMap(w.contracts.byID)
	flights := snapshotMap(w.flights.byID)
	bases := snapshotMap(w.bases.byID)
	aircraftUpgrades := snapshotHistory(w.upgrades.byAircraft)
	baseUpgrades := snapshotHistory(w.bases.upgrades)
	nextSave := w.saves.nextID
	nextAircraft := w.aircraft.nextID
	nextContract := w.contracts.nextID
	nextFlight := w.flights.nextID
	nextBase := w.bases.nextID

	return func() {
		w.saves.byID, w.saves.nextID = saves, nextSave
		w.aircraft.byID, w.aircraft.nextID = aircraft, nextAircraft
		w.contracts.byID, w.contracts.nextID = contracts, nextContract
		w.flights.byID, w.flights.nextID = flights, nextFlight
		w.bases.byID, w.bases.nextID = bases, nextBase
		w.upgrades.byAircraft = aircraftUpgrades
		w.bases.upgrades = baseUpgrades
	}
}

func snapshotMap[V any](in map[int64]*V) map[int64]*V {
	out := make(map[int64]*V, len(in))
	for k, v := range in {
		copied := *v
		out[k] = &copied
	}
	return out
}

func snapshotHistory[V any](in map[int64][]*V) map[int64][]*V {
	out := make(map[int64][]*V, len(in))
	for k, list := range in {
		copies := make([]*V, len(list))
		for i, v := range list {
			copied := *v
			copies[i] = &copied
		}
		out[k] = copies
	}
	return out
}

func (w *world) deps() Deps {
	return Deps{
		Tx:        fakeTx{begin: w.beginTx},
		Saves:     w.saves,
		Aircraft:  w.aircraft,
		Catalog:   w.catalog,
		Upgrades:  w.upgrades,
		Contracts: w.contracts,
		Flights:   w.flights,
		Bases:     w.bases,
		Resolver:  eco.NewResolver(nil),
		Pricing:   upgrade.NewCalculator(nil),
		Offers:    offers.NewGenerator(w.airports, offers.NewDefaultConfig(), rand.New(rand.NewSource(42))),
	}
}

// setConfig rebuilds the session over the same fakes with new tuning.
func (w *world) setConfig(cfg GameConfig) {
	w.cfg = cfg
	w.session = NewSession(w.deps(), cfg)
}

// addSave seeds an active company directly into the fakes. Names are
// unique per call so multiple companies can coexist.
func (w *world) addSave(cash int64, day int) *models.GameSave {
	save := &models.GameSave{
		OwnerID:     "owner",
		CompanyName: fmt.Sprintf("TestAir-%d", w.saves.nextID),
		CurrentDay:  day,
		Cash:        decimal.NewFromInt(cash),
		Status:      models.SaveStatusActive,
	}
	_ = w.saves.CreateTx(context.Background(), bun.Tx{}, save)
	return save
}

func (w *world) addModel(code, category string, price int64, cargoKg, speedKts int, ecoClass string, ecoBase float64) *models.AircraftModel {
	model := &models.AircraftModel{
		ModelCode:        code,
		Manufacturer:     "Test",
		ModelName:        code,
		PurchasePrice:    decimal.NewFromInt(price),
		BaseCargoKg:      cargoKg,
		RangeKm:          5000,
		CruiseSpeedKts:   speedKts,
		Category:         category,
		EcoClass:         ecoClass,
		EcoFeeMultiplier: ecoBase,
	}
	w.catalog.byCode[code] = model
	return model
}

func (w *world) addAircraft(saveID int64, modelCode, at string) *models.Aircraft {
	aircraft := &models.Aircraft{
		SaveID:              saveID,
		ModelCode:           modelCode,
		Registration:        "N-TEST",
		Status:              models.AircraftStatusIdle,
		CurrentAirportIdent: at,
		ConditionPercent:    100,
		PurchasePrice:       decimal.Zero,
	}
	if model, ok := w.catalog.byCode[modelCode]; ok {
		aircraft.PurchasePrice = model.PurchasePrice
	}
	_ = w.aircraft.CreateTx(context.Background(), bun.Tx{}, aircraft)
	return aircraft
}

func (w *world) addBase(saveID int64, ident string, cost int64, tier string) *models.OwnedBase {
	base := &models.OwnedBase{
		SaveID:       saveID,
		AirportIdent: ident,
		PurchaseCost: decimal.NewFromInt(cost),
	}
	_ = w.bases.CreateTx(context.Background(), bun.Tx{}, base)
	_ = w.bases.AppendUpgradeTx(context.Background(), bun.Tx{}, &models.BaseUpgrade{
		BaseID: base.ID,
		Tier:   tier,
	})
	return base
}

// addEnrouteFlight wires a contract plus its flight and flips the
// aircraft busy, mirroring what AcceptOffer persists.
func (w *world) addEnrouteFlight(saveID, aircraftID int64, arrivalDay, deadlineDay int, reward, penalty int64, dest string) (*models.Contract, *models.Flight) {
	contract := &models.Contract{
		SaveID:           saveID,
		AircraftID:       aircraftID,
		OriginIdent:      "EFHK",
		DestinationIdent: dest,
		PayloadKg:        1000,
		DistanceKm:       1000,
		Reward:           decimal.NewFromInt(reward),
		Penalty:          decimal.NewFromInt(penalty),
		Status:           models.ContractStatusInProgress,
		DeadlineDay:      deadlineDay,
	}
	_ = w.contracts.CreateTx(context.Background(), bun.Tx{}, contract)

	flight := &models.Flight{
		SaveID:     saveID,
		ContractID: contract.ID,
		AircraftID: aircraftID,
		Status:     models.FlightStatusEnroute,
		ArrivalDay: arrivalDay,
		DistanceKm: 1000,
		DepIdent:   "EFHK",
		ArrIdent:   dest,
	}
	_ = w.flights.CreateTx(context.Background(), bun.Tx{}, flight)

	if aircraft, ok := w.aircraft.byID[aircraftID]; ok {
		aircraft.Status = models.AircraftStatusBusy
	}
	return contract, flight
}
