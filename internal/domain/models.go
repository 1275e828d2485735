package domain

import "maps"

// IndianEntry is one row of the Indian entry log. Amount fields are taka
// with no minor unit; dates are ISO yyyy-mm-dd strings as stored remotely.
type IndianEntry struct {
	ID           string  `json:"id,omitempty"`
	Date         string  `json:"date"`
	InvoiceNo    string  `json:"invoiceNo"`
	ShipperName  string  `json:"shipperName"`
	BuyerName    string  `json:"buyerName"`
	DepotName    string  `json:"depotName"`
	Doc          float64 `json:"doc"`
	Ctn          float64 `json:"ctn"`
	Ton          float64 `json:"ton"`
	TruckUnload  float64 `json:"truckUnload"`
	Con          float64 `json:"con"`
	Others       float64 `json:"others"`
	TotalTaka    float64 `json:"totalTaka"`
	EmployeeName string  `json:"employeeName,omitempty"`
}

// BillInfo is a billing record frozen against the matched Indian entry at
// creation time. TotalDoc, TotalIndian, and TotalBill are snapshots and are
// never recomputed after the fact.
type BillInfo struct {
	ID               string  `json:"id,omitempty"`
	Date             string  `json:"date"`
	InvoiceNo        string  `json:"invoiceNo"`
	ShipperName      string  `json:"shipperName"`
	TotalDoc         float64 `json:"totalDoc"`
	TotalIndian      float64 `json:"totalIndian"`
	TotalBill        float64 `json:"totalBill"`
	PaidBill         float64 `json:"paidBill"`
	DueBill          float64 `json:"dueBill"`
	MiscApprovedBill float64 `json:"miscApprovedBill"`
}

// AccountEntry is a cash movement in the account log.
type AccountEntry struct {
	ID      string  `json:"id,omitempty"`
	Date    string  `json:"date"`
	Purpose string  `json:"purpose"`
	Amount  float64 `json:"amount"`
	Remarks string  `json:"remarks"`
}

// TruckInfo is one truck gate log row.
type TruckInfo struct {
	ID           string `json:"id,omitempty"`
	Date         string `json:"date"`
	TruckNumber  string `json:"truckNumber"`
	DriverMobile string `json:"driverMobile"`
	Depot        string `json:"depot"`
	InTime       string `json:"inTime"`
	OutTime      string `json:"outTime"`
}

// BusinessEntity is a registered shipper, buyer, or depot referenced from
// entries by name, not by id.
type BusinessEntity struct {
	ID   string     `json:"id,omitempty"`
	Type EntityType `json:"type"`
	Name string     `json:"name"`
}

// DepotCode is a registered depot code used by the cutoff analyzer.
type DepotCode struct {
	ID    string `json:"id,omitempty"`
	Code  string `json:"code"`
	Alias string `json:"alias,omitempty"`
}

// PriceRate overrides the default per-unit rate for one buyer + condition pair.
type PriceRate struct {
	ID        string        `json:"id,omitempty"`
	BuyerName string        `json:"buyerName"`
	Condition RateCondition `json:"condition"`
	Rate      float64       `json:"rate"`
}

// User is a console user record held in the remote store.
type User struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}

// Settings holds user preferences plus the default per-condition rate table
// used when no buyer-specific PriceRate matches.
//
// Settings is a value type, but DefaultRates is a map; use Clone when a copy
// must not share the rate table with the original.
type Settings struct {
	AdminName       string                    `json:"adminName"`
	RoleTitle       string                    `json:"roleTitle"`
	ProfileImageURL string                    `json:"profileImageUrl"`
	Theme           string                    `json:"theme"`
	Brightness      int                       `json:"brightness"`
	Zoom            int                       `json:"zoom"`
	FontFamily      string                    `json:"fontFamily"`
	BgColor         string                    `json:"bgColor"`
	TextColor       string                    `json:"textColor"`
	Language        string                    `json:"language"`
	DefaultRates    map[RateCondition]float64 `json:"defaultRates"`
}

// Clone returns a copy whose DefaultRates map is detached from the receiver's.
func (s Settings) Clone() Settings {
	s.DefaultRates = maps.Clone(s.DefaultRates)
	return s
}

// DefaultSettings returns the factory settings record.
func DefaultSettings() Settings {
	return Settings{
		AdminName:    "Inventory Admin",
		RoleTitle:    "Administrator",
		Theme:        "Ocean Breeze",
		Brightness:   100,
		Zoom:         100,
		FontFamily:   "Poppins",
		BgColor:      "#f8fafc",
		TextColor:    "#0f172a",
		Language:     "en",
		DefaultRates: DefaultRateTable(),
	}
}

// Snapshot is the combined remote dataset returned by the readAll action,
// one ordered slice per entity kind. Kinds missing from the remote response
// decode as nil and are treated as empty collections.
type Snapshot struct {
	IndianEntries    []IndianEntry    `json:"indianEntries"`
	BillInfos        []BillInfo       `json:"billInfos"`
	AccountEntries   []AccountEntry   `json:"accountEntries"`
	TruckInfos       []TruckInfo      `json:"truckInfos"`
	BusinessEntities []BusinessEntity `json:"businessEntities"`
	DepotCodes       []DepotCode      `json:"depotCodes"`
	PriceRates       []PriceRate      `json:"priceRates"`
	Users            []User           `json:"users"`
}

// Backup is the exported backup document: settings plus every collection.
type Backup struct {
	Settings Settings `json:"settings"`
	Snapshot
}

func (e IndianEntry) EntityID() string    { return e.ID }
func (e BillInfo) EntityID() string       { return e.ID }
func (e AccountEntry) EntityID() string   { return e.ID }
func (e TruckInfo) EntityID() string      { return e.ID }
func (e BusinessEntity) EntityID() string { return e.ID }
func (e DepotCode) EntityID() string      { return e.ID }
func (e PriceRate) EntityID() string      { return e.ID }
func (e User) EntityID() string           { return e.ID }

func (e IndianEntry) WithEntityID(id string) IndianEntry       { e.ID = id; return e }
func (e BillInfo) WithEntityID(id string) BillInfo             { e.ID = id; return e }
func (e AccountEntry) WithEntityID(id string) AccountEntry     { e.ID = id; return e }
func (e TruckInfo) WithEntityID(id string) TruckInfo           { e.ID = id; return e }
func (e BusinessEntity) WithEntityID(id string) BusinessEntity { e.ID = id; return e }
func (e DepotCode) WithEntityID(id string) DepotCode           { e.ID = id; return e }
func (e PriceRate) WithEntityID(id string) PriceRate           { e.ID = id; return e }
func (e User) WithEntityID(id string) User                     { e.ID = id; return e }

// Entity is the constraint shared by every record kind: a string id plus a
// copy-with-id helper so repositories can assign temp ids without reflection.
type Entity[T any] interface {
	EntityID() string
	WithEntityID(id string) T
}
