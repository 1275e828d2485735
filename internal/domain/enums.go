package domain

// EntityType classifies a BusinessEntity in the master registry.
type EntityType string

const (
	EntityShipper EntityType = "SHIPPER"
	EntityBuyer   EntityType = "BUYER"
	EntityDepot   EntityType = "DEPOT"
)

// ValidEntityTypes lists the accepted registry types.
var ValidEntityTypes = map[EntityType]bool{
	EntityShipper: true,
	EntityBuyer:   true,
	EntityDepot:   true,
}

// RateCondition names one chargeable unit on an Indian entry.
type RateCondition string

const (
	ConditionDoc         RateCondition = "DOC"
	ConditionCtn         RateCondition = "CTN"
	ConditionTon         RateCondition = "TON"
	ConditionTruckUnload RateCondition = "TRUCK UNLOAD"
)

// ValidRateConditions lists the accepted rate conditions.
var ValidRateConditions = map[RateCondition]bool{
	ConditionDoc:         true,
	ConditionCtn:         true,
	ConditionTon:         true,
	ConditionTruckUnload: true,
}

// Role defines the console user roles.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleManager       Role = "Manager"
	RoleStaff         Role = "Staff"
)

// Kind identifies one entity collection. The string value doubles as the
// remote payload key and the durable cache key suffix.
type Kind string

const (
	KindIndianEntry    Kind = "indianEntries"
	KindBillInfo       Kind = "billInfos"
	KindAccountEntry   Kind = "accountEntries"
	KindTruckInfo      Kind = "truckInfos"
	KindBusinessEntity Kind = "businessEntities"
	KindDepotCode      Kind = "depotCodes"
	KindPriceRate      Kind = "priceRates"
	KindUser           Kind = "users"
)

// ActionSuffix returns the remote action suffix for this kind, e.g.
// "IndianEntry" so that mutations become addIndianEntry / updateIndianEntry /
// deleteIndianEntry.
func (k Kind) ActionSuffix() string {
	switch k {
	case KindIndianEntry:
		return "IndianEntry"
	case KindBillInfo:
		return "BillInfo"
	case KindAccountEntry:
		return "AccountEntry"
	case KindTruckInfo:
		return "TruckInfo"
	case KindBusinessEntity:
		return "BusinessEntity"
	case KindDepotCode:
		return "DepotCode"
	case KindPriceRate:
		return "PriceRate"
	case KindUser:
		return "User"
	}
	return string(k)
}

// AllKinds lists every entity kind in remote payload order.
var AllKinds = []Kind{
	KindIndianEntry,
	KindBillInfo,
	KindAccountEntry,
	KindTruckInfo,
	KindBusinessEntity,
	KindDepotCode,
	KindPriceRate,
	KindUser,
}
