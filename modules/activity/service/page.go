package service

// Page identifies the screen being projected. The set is closed: only the
// variants below implement it.
type Page interface {
	isPage()
	// Name is the route-like identifier of the page.
	Name() string
	// RequiresViewer reports whether an anonymous viewer gets the auth page instead.
	RequiresViewer() bool
}

type ViewMode string

const (
	ViewModeList ViewMode = "list"
	ViewModeMap  ViewMode = "map"
)

func (m ViewMode) IsValid() bool {
	return m == ViewModeList || m == ViewModeMap
}

type HomePage struct{}

type CatalogPage struct {
	Search string
	Type   string
	Mode   ViewMode
}

type DetailPage struct {
	ActivityID string
}

type CreateActivityPage struct{}

type ProfilePage struct{}

type DashboardPage struct{}

type AuthPage struct{}

func (HomePage) isPage()           {}
func (CatalogPage) isPage()        {}
func (DetailPage) isPage()         {}
func (CreateActivityPage) isPage() {}
func (ProfilePage) isPage()        {}
func (DashboardPage) isPage()      {}
func (AuthPage) isPage()           {}

func (HomePage) Name() string           { return "home" }
func (CatalogPage) Name() string        { return "activities" }
func (DetailPage) Name() string         { return "activity-detail" }
func (CreateActivityPage) Name() string { return "create-activity" }
func (ProfilePage) Name() string        { return "profile" }
func (DashboardPage) Name() string      { return "dashboard" }
func (AuthPage) Name() string           { return "auth" }

func (HomePage) RequiresViewer() bool           { return false }
func (CatalogPage) RequiresViewer() bool        { return false }
func (DetailPage) RequiresViewer() bool         { return false }
func (CreateActivityPage) RequiresViewer() bool { return true }
func (ProfilePage) RequiresViewer() bool        { return true }
func (DashboardPage) RequiresViewer() bool      { return true }
func (AuthPage) RequiresViewer() bool           { return false }
