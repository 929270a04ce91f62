package models

// Vehicle is the subset of driver vehicle data that gets denormalized onto
// a ride at claim time so riders can see what is picking them up.
type Vehicle struct {
	Model string `json:"model" bson:"model"`
	Plate string `json:"plate" bson:"plate"`
	Color string `json:"color" bson:"color"`
}
