package entity

// Record store collection names.
const (
	CollectionAdministrators = "admins"
	CollectionPharmacists    = "pharmacists"
	CollectionPharmacies     = "pharmacies"
	CollectionCategories     = "categories"
	CollectionCustomers      = "users"
	CollectionAccounts       = "accounts"
)

// Blob path prefixes.
const (
	BlobPrefixPharmacies    = "pharmacies"
	BlobPrefixCategories    = "categoryImages"
	BlobPrefixCustomerPhoto = "userProfiles"
)
