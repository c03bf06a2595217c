package service

import (
	"outings-api/core/constants"
	"outings-api/core/errors"
	"outings-api/core/utils"
	"outings-api/modules/activity/dto"
	"outings-api/modules/activity/entity"
	"outings-api/modules/activity/mapper"
	"outings-api/modules/activity/validator"
	geomap "outings-api/modules/geomap/service"
)

// ViewProjector builds page read models from a snapshot. It holds no state of its own.
type ViewProjector struct {
	homeSize int
	maps     *geomap.MapProjector
}

func NewViewProjector(homeSize int, maps *geomap.MapProjector) *ViewProjector {
	if homeSize <= 0 {
		homeSize = constants.DefaultHomeFeedSize
	}
	if maps == nil {
		maps = geomap.NewMapProjector()
	}
	return &ViewProjector{
		homeSize: homeSize,
		maps:     maps,
	}
}

// Project renders page for viewer (nil when anonymous). Pages that need a viewer
// fall back to the auth page.
func (p *ViewProjector) Project(d *Derivations, viewer *entity.User, page Page) (*dto.PageView, *errors.AppError) {
	view := &dto.PageView{
		Page:      page.Name(),
		Requested: page.Name(),
	}
	if viewer != nil {
		u := mapper.ToUserResponse(*viewer)
		view.Viewer = &u
	}

	if page.RequiresViewer() && viewer == nil {
		view.Page = AuthPage{}.Name()
		view.Data = p.Auth(d, constants.MsgLoginRequired)
		return view, nil
	}

	viewerID := ""
	if viewer != nil {
		viewerID = viewer.ID
	}

	switch pg := page.(type) {
	case HomePage:
		view.Data = p.Home(d)
	case CatalogPage:
		view.Data = p.Catalog(d, pg)
	case DetailPage:
		detail, err := p.Detail(d, viewerID, pg.ActivityID)
		if err != nil {
			return nil, err
		}
		view.Data = detail
	case CreateActivityPage:
		view.Data = p.CreateActivity()
	case ProfilePage:
		view.Data = p.Profile(d, *viewer)
	case DashboardPage:
		view.Data = p.Dashboard(d, viewerID)
	case AuthPage:
		view.Data = p.Auth(d, "")
	default:
		return nil, errors.NewAppError(errors.ErrNotFound, "unknown page", nil)
	}
	return view, nil
}

// Home shows the first activities in store order, most recently created first.
func (p *ViewProjector) Home(d *Derivations) *dto.HomeView {
	activities := d.Snapshot().ListActivities()
	if len(activities) > p.homeSize {
		activities = activities[:p.homeSize]
	}
	return &dto.HomeView{Activities: p.cards(d, activities)}
}

// Catalog filters the whole collection. Map mode carries the same set plus its markers.
func (p *ViewProjector) Catalog(d *Derivations, page CatalogPage) *dto.CatalogView {
	all := d.Snapshot().ListActivities()

	typeFilter := page.Type
	if typeFilter == "" {
		typeFilter = constants.AllTypes
	}
	mode := page.Mode
	if !mode.IsValid() {
		mode = ViewModeList
	}

	filtered := FilterActivities(all, page.Search, typeFilter)
	view := &dto.CatalogView{
		Search:     page.Search,
		Type:       typeFilter,
		Mode:       string(mode),
		Types:      DistinctTypes(all),
		Activities: p.cards(d, filtered),
	}
	if mode == ViewModeMap {
		m := p.maps.Project(mapper.ToMarkers(filtered))
		view.Map = &m
	}
	return view
}

// Detail assembles one activity with its registrations, comments and derived figures.
func (p *ViewProjector) Detail(d *Derivations, viewerID, activityID string) (*dto.DetailView, *errors.AppError) {
	snap := d.Snapshot()
	a, ok := snap.Activity(activityID)
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, constants.MsgActivityNotFound, nil)
	}

	organizer := mapper.ToUserResponsePtr(snap.User(a.OrganizerID))

	registrations := make([]dto.RegistrationResponse, 0)
	for _, r := range snap.RegistrationsFor(a.ID) {
		registrations = append(registrations, mapper.ToRegistrationResponse(r, mapper.ToUserResponsePtr(snap.User(r.UserID))))
	}
	comments := make([]dto.CommentResponse, 0)
	for _, c := range snap.CommentsFor(a.ID) {
		comments = append(comments, mapper.ToCommentResponse(c, mapper.ToUserResponsePtr(snap.User(c.UserID))))
	}

	accepted := d.AcceptedCount(a.ID)
	avg := d.AverageRating(a.ID)
	past := a.IsPast(d.Now())

	view := &dto.DetailView{
		Activity:           mapper.ToActivityResponse(a, organizer),
		Registrations:      registrations,
		Comments:           comments,
		AcceptedCount:      accepted,
		RemainingCapacity:  a.Capacity - accepted,
		AverageRating:      avg,
		AverageRatingLabel: utils.FormatRating(avg),
		IsOrganizer:        viewerID != "" && viewerID == a.OrganizerID,
		IsPast:             past,
		IsFull:             accepted >= a.Capacity,
		StatusLabel:        mapper.StatusLabel(past),
		JoinGate:           string(d.JoinGate(viewerID, a.ID)),
		CanComment:         d.CanComment(viewerID, a.ID),
	}
	if viewerID != "" {
		if status, ok := d.RegistrationStatus(viewerID, a.ID); ok {
			view.IsRegistered = true
			view.RegistrationStatus = string(status)
		}
	}
	if markers := mapper.ToMarkers([]entity.Activity{a}); len(markers) > 0 {
		m := p.maps.Project(markers)
		view.Map = &m
	}
	return view, nil
}

// Dashboard lists the viewer's organized activities with every registration attached.
func (p *ViewProjector) Dashboard(d *Derivations, viewerID string) *dto.DashboardView {
	snap := d.Snapshot()
	out := make([]dto.DashboardActivity, 0)
	for _, a := range snap.ListActivities() {
		if a.OrganizerID != viewerID {
			continue
		}
		item := dto.DashboardActivity{
			Activity:      mapper.ToActivityCard(a, d.AcceptedCount(a.ID), d.Now()),
			Registrations: make([]dto.RegistrationResponse, 0),
		}
		for _, r := range snap.RegistrationsFor(a.ID) {
			if r.Status == entity.RegistrationStatusPending {
				item.PendingCount++
			}
			item.Registrations = append(item.Registrations, mapper.ToRegistrationResponse(r, mapper.ToUserResponsePtr(snap.User(r.UserID))))
		}
		out = append(out, item)
	}
	return &dto.DashboardView{Activities: out}
}

// Profile shows organized activities newest first and registered ones soonest first.
func (p *ViewProjector) Profile(d *Derivations, viewer entity.User) *dto.ProfileView {
	snap := d.Snapshot()
	all := snap.ListActivities()

	organized := make([]entity.Activity, 0)
	registered := make([]entity.Activity, 0)
	for _, a := range all {
		if a.OrganizerID == viewer.ID {
			organized = append(organized, a)
		}
		if d.IsRegistered(viewer.ID, a.ID) {
			registered = append(registered, a)
		}
	}

	view := &dto.ProfileView{
		User:       mapper.ToUserResponse(viewer),
		Organized:  p.cards(d, SortByDatetimeDescending(organized)),
		Registered: make([]dto.RegisteredActivity, 0, len(registered)),
	}
	for _, a := range SortByDatetimeAscending(registered) {
		status, _ := d.RegistrationStatus(viewer.ID, a.ID)
		view.Registered = append(view.Registered, dto.RegisteredActivity{
			Activity: mapper.ToActivityCard(a, d.AcceptedCount(a.ID), d.Now()),
			Status:   string(status),
		})
	}
	return view
}

func (p *ViewProjector) CreateActivity() *dto.CreateActivityView {
	types := make([]string, 0, len(entity.ActivityTypes))
	for _, t := range entity.ActivityTypes {
		types = append(types, string(t))
	}
	return &dto.CreateActivityView{
		Types: types,
		Defaults: dto.CreateActivityRequest{
			Capacity: validator.DefaultCapacity,
			Type:     string(entity.ActivityTypeHike),
		},
	}
}

// Auth lists the seeded emails usable with the mock login.
func (p *ViewProjector) Auth(d *Derivations, message string) *dto.AuthView {
	users := d.Snapshot().ListUsers()
	emails := make([]string, 0, len(users))
	for _, u := range users {
		emails = append(emails, u.Email)
	}
	return &dto.AuthView{
		Message:    message,
		DemoEmails: emails,
	}
}

func (p *ViewProjector) cards(d *Derivations, activities []entity.Activity) []dto.ActivityCard {
	out := make([]dto.ActivityCard, 0, len(activities))
	for _, a := range activities {
		out = append(out, mapper.ToActivityCard(a, d.AcceptedCount(a.ID), d.Now()))
	}
	return out
}
