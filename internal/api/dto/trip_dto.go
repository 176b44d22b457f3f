package dto

// CreateBookingRequest payload for booking a package.
type CreateBookingRequest struct {
	PackageID    string  `json:"packageId"`
	PackageTitle string  `json:"packageTitle"`
	Email        string  `json:"email"`
	TravelerName string  `json:"travelerName"`
	GuideName    string  `json:"guideName"`
	TourDate     string  `json:"tourDate"`
	Price        float64 `json:"price"`
}

// BookingCreatedResponse reports a created booking.
type BookingCreatedResponse struct {
	InsertedID string `json:"insertedId"`
	Reference  string `json:"reference"`
}

// AddWishlistRequest payload for wishlisting a package.
type AddWishlistRequest struct {
	PackageID    string  `json:"packageId"`
	PackageTitle string  `json:"packageTitle"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Email        string  `json:"email"`
}

// CreateStoryRequest payload for publishing a story. Any author email in the
// body is ignored; the server stamps the verified caller.
type CreateStoryRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}
