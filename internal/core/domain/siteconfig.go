package domain

// SiteConfigID is the fixed identifier of the config singleton.
const SiteConfigID = "siteStatus"

// DefaultMaintenanceMessage is written when the singleton is first created.
const DefaultMaintenanceMessage = "ระบบอยู่ระหว่างการปรับปรุง"

// SiteConfig is a single record read by every actor and written only by
// admins. While the site is locked, ordinary actors are blocked from writing;
// admins retain access.
type SiteConfig struct {
	ID                 string `json:"id" bson:"_id,omitempty"`
	IsSiteLocked       bool   `json:"is_site_locked" bson:"is_site_locked"`
	MaintenanceMessage string `json:"maintenance_message" bson:"maintenance_message"`
}
