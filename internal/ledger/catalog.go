package ledger

// Catalog maps purchasable package SKUs to the quota units they grant.
// The catalog is owned by the PurchaseLedger it is injected into; it is
// not ambient global state.
type Catalog map[string]int

// DefaultCatalog returns the fixed production catalog. Amounts are
// resolved server-side at verification time and never trusted from the
// client.
func DefaultCatalog() Catalog {
	return Catalog{
		"package_50":  50,
		"package_100": 100,
		"package_200": 200,
	}
}

// Amount resolves a package SKU to its quota amount. ok is false for any
// SKU outside the catalog; unknown packages are rejected, never defaulted.
func (c Catalog) Amount(packageType string) (int, bool) {
	amount, ok := c[packageType]
	return amount, ok
}
