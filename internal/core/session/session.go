// Package session tracks the cross-view navigation state machine: the
// current screen, an optional pending action to replay after login, and the
// edit context shared by the three create/edit forms.
package session

import (
	"github.com/hajobjah/marketplace/internal/core/domain"
)

// Screen enumerates the navigable screens.
type Screen string

const (
	ScreenHome           Screen = "HOME"
	ScreenPostJob        Screen = "POST_JOB"
	ScreenFindJobs       Screen = "FIND_JOBS"
	ScreenOfferHelp      Screen = "OFFER_HELP"
	ScreenFindHelpers    Screen = "FIND_HELPERS"
	ScreenLogin          Screen = "LOGIN"
	ScreenRegister       Screen = "REGISTER"
	ScreenAdminDashboard Screen = "ADMIN_DASHBOARD"
	ScreenMyPosts        Screen = "MY_POSTS"
	ScreenUserProfile    Screen = "USER_PROFILE"
	ScreenAboutUs        Screen = "ABOUT_US"
	ScreenPublicProfile  Screen = "PUBLIC_PROFILE"
	ScreenSafety         Screen = "SAFETY"
	ScreenWebboard       Screen = "WEBBOARD"
)

// ItemKind discriminates the three editable item kinds. Switches over it are
// exhaustive; adding a kind must be handled everywhere the compiler points.
type ItemKind int

const (
	ItemJob ItemKind = iota
	ItemHelperProfile
	ItemBoardPost
)

// EditScreen is the create/edit screen shared by both creation and editing
// of the given kind.
func (k ItemKind) EditScreen() Screen {
	switch k {
	case ItemJob:
		return ScreenPostJob
	case ItemHelperProfile:
		return ScreenOfferHelp
	case ItemBoardPost:
		return ScreenWebboard
	}
	return ScreenHome
}

// protectedScreens require an authenticated actor.
var protectedScreens = map[Screen]bool{
	ScreenPostJob:        true,
	ScreenFindJobs:       true,
	ScreenOfferHelp:      true,
	ScreenFindHelpers:    true,
	ScreenAdminDashboard: true,
	ScreenMyPosts:        true,
	ScreenUserProfile:    true,
	ScreenPublicProfile:  true,
	ScreenWebboard:       true,
}

// frozenAllowedScreens stay reachable for a frozen actor; navigating anywhere
// else forces sign-out.
var frozenAllowedScreens = map[Screen]bool{
	ScreenHome:    true,
	ScreenLogin:   true,
	ScreenSafety:  true,
	ScreenAboutUs: true,
}

// Redirect is a navigation captured before a forced login, replayed verbatim
// by CompleteLogin.
type Redirect struct {
	Screen  Screen
	Payload any
}

// EditContext marks an existing item as being edited. Its absence means the
// active create/edit screen is in creation mode.
type EditContext struct {
	ItemID       string
	Kind         ItemKind
	SourceScreen Screen
}

// ActorProvider supplies the signed-in actor's last-known record. The entity
// store satisfies it.
type ActorProvider interface {
	CurrentActor() (domain.User, bool)
}

// SignOutFunc tears down the auth state; invoked when a frozen actor tries to
// navigate outside the allowed set.
type SignOutFunc func()

// Session is the finite state machine. It is driven from the presentation
// layer's event loop and is not safe for concurrent use.
type Session struct {
	actors  ActorProvider
	signOut SignOutFunc

	current Screen
	pending *Redirect
	edit    *EditContext
}

// New returns a session starting at the home screen.
func New(actors ActorProvider, signOut SignOutFunc) *Session {
	return &Session{
		actors:  actors,
		signOut: signOut,
		current: ScreenHome,
	}
}

// Current returns the active screen.
func (s *Session) Current() Screen { return s.current }

// PendingRedirect returns the captured post-login navigation, if any.
func (s *Session) PendingRedirect() *Redirect { return s.pending }

// Edit returns the active edit context, or nil in creation mode.
func (s *Session) Edit() *EditContext { return s.edit }

// Navigate moves to screen. Navigating to a protected screen without a
// signed-in actor captures the request as a pending redirect and lands on the
// login screen instead. A frozen actor heading outside the always-allowed set
// is signed out and the navigation aborted.
func (s *Session) Navigate(screen Screen, payload any) {
	actor, signedIn := s.actors.CurrentActor()

	if signedIn && actor.IsFrozen && !frozenAllowedScreens[screen] {
		if s.signOut != nil {
			s.signOut()
		}
		s.current = ScreenLogin
		return
	}

	if !signedIn && protectedScreens[screen] {
		s.pending = &Redirect{Screen: screen, Payload: payload}
		s.current = ScreenLogin
		return
	}

	s.current = screen
}

// RequireLogin captures an attempted action and routes to the login screen.
// Used by the mutation gateway path when an anonymous write is attempted.
func (s *Session) RequireLogin(screen Screen, payload any) {
	s.pending = &Redirect{Screen: screen, Payload: payload}
	s.current = ScreenLogin
}

// CompleteLogin replays the pending redirect if one was captured, otherwise
// goes home. The redirect is cleared either way.
func (s *Session) CompleteLogin() {
	if s.pending != nil {
		r := *s.pending
		s.pending = nil
		s.Navigate(r.Screen, r.Payload)
		return
	}
	s.Navigate(ScreenHome, nil)
}

// StartEdit records the item being edited and navigates to the form screen
// matching its kind. The same screen serves creation; the presence of the
// edit context is the only discriminator.
func (s *Session) StartEdit(itemID string, kind ItemKind, source Screen) {
	s.edit = &EditContext{ItemID: itemID, Kind: kind, SourceScreen: source}
	s.Navigate(kind.EditScreen(), nil)
}

// CancelEdit clears the edit context and returns to the source screen,
// falling back to home.
func (s *Session) CancelEdit() {
	s.finishEdit()
}

// SubmitEdit clears the edit context after a successful save and returns to
// the source screen, falling back to home.
func (s *Session) SubmitEdit() {
	s.finishEdit()
}

func (s *Session) finishEdit() {
	target := ScreenHome
	if s.edit != nil && s.edit.SourceScreen != "" {
		target = s.edit.SourceScreen
	}
	s.edit = nil
	s.Navigate(target, nil)
}
