package models

// DeletePolicy is what happens to a referencing row when the row it
// references is deleted.
type DeletePolicy string

const (
	Cascade DeletePolicy = "CASCADE"
	SetNull DeletePolicy = "SET NULL"
)

// ForeignKeyPolicy names one relation and its delete policy. The set of
// policies below is the schema contract other components rely on: any
// storage migration must keep exactly these relations cascading or
// nullifying. Relation is the struct field declaring the constraint; a
// relation tagged on both ends appears here once per declaring field even
// though GORM emits a single constraint for the pair.
type ForeignKeyPolicy struct {
	Model    any
	Relation string
	Policy   DeletePolicy
}

func ForeignKeyPolicies() []ForeignKeyPolicy {
	return []ForeignKeyPolicy{
		{&User{}, "Products", Cascade},
		{&User{}, "Cart", Cascade},
		{&Product{}, "Owner", Cascade},
		{&Cart{}, "User", Cascade},
		{&Cart{}, "Items", Cascade},
		{&CartItem{}, "Product", Cascade},
		{&BuyerPurchaseHistory{}, "Buyer", Cascade},
		{&BuyerPurchaseHistory{}, "Product", SetNull},
		{&BuyerPurchaseHistory{}, "Seller", SetNull},
		{&SellerPurchaseHistory{}, "Seller", Cascade},
		{&SellerPurchaseHistory{}, "Product", SetNull},
		{&SellerPurchaseHistory{}, "SoldTo", SetNull},
		{&Review{}, "Product", Cascade},
		{&Review{}, "Buyer", Cascade},
		{&Review{}, "Seller", Cascade},
	}
}
