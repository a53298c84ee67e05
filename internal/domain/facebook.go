package domain

import "time"

// Page is a Facebook page the user can manage.
type Page struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token,omitempty"`
	Category    string `json:"category,omitempty"`
}

// PageConnection links a business to the page it publishes to.
type PageConnection struct {
	BusinessID  string    `db:"business_id"  json:"business_id"`
	PageID      string    `db:"page_id"      json:"page_id"`
	PageName    string    `db:"page_name"    json:"page_name"`
	AccessToken string    `db:"access_token" json:"-"`
	Permissions string    `db:"permissions"  json:"permissions"`
	ConnectedAt time.Time `db:"connected_at" json:"connected_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}
