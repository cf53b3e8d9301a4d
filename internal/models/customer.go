package models

// Customer is a campus customer account as the ordering engine sees it.
// Account management lives elsewhere; the engine only reads these fields to
// freeze a snapshot onto the order.
type Customer struct {
	ID            string `json:"id" db:"id"`
	FirstName     string `json:"fname" db:"fname"`
	LastName      string `json:"lname" db:"lname"`
	PreferredName string `json:"preferred_name,omitempty" db:"preferred_name"`
	Email         string `json:"email" db:"email"`
	Phone         string `json:"phone,omitempty" db:"phone"`
	StudentID     string `json:"student_id,omitempty" db:"student_id"`
	IsActive      bool   `json:"is_active" db:"is_active"`
}

// DisplayName is the name frozen onto order snapshots.
func (c *Customer) DisplayName() string {
	return c.FirstName + " " + c.LastName
}
