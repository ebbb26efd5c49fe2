package domain

// Client represents a customer in the client directory. Identity is ID;
// all other fields are mutable attributes owned by the directory.
type Client struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	Address    string
	CreditCard string
}
