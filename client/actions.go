package client

import (
	"errors"
)

// Commands wrap API calls and dispatch the success or failure transition.
// Each failure message produces exactly one alert, in response order.

// failAlerts raises one danger alert per failure message.
func (s *Store) failAlerts(err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, msg := range apiErr.Messages() {
			s.AddAlert(msg, "danger")
		}
		return
	}
	s.AddAlert(err.Error(), "danger")
}

// Register creates an account and loads the authenticated user.
func (s *Store) Register(name, email, password string) error {
	token, err := s.api.Register(name, email, password)
	if err != nil {
		s.failAlerts(err)
		s.Dispatch(Action{Type: RegisterFail})
		return err
	}
	s.Dispatch(Action{Type: RegisterSuccess, Payload: token})
	return s.LoadUser()
}

// Login authenticates and loads the current user.
func (s *Store) Login(email, password string) error {
	token, err := s.api.Login(email, password)
	if err != nil {
		s.failAlerts(err)
		s.Dispatch(Action{Type: LoginFail})
		return err
	}
	s.Dispatch(Action{Type: LoginSuccess, Payload: token})
	return s.LoadUser()
}

// LoadUser fetches the account for the stored token.
func (s *Store) LoadUser() error {
	user, err := s.api.LoadUser()
	if err != nil {
		s.Dispatch(Action{Type: AuthError})
		return err
	}
	s.Dispatch(Action{Type: UserLoaded, Payload: user})
	return nil
}

// Logout clears the session and profile state.
func (s *Store) Logout() {
	s.Dispatch(Action{Type: ClearProfile})
	s.Dispatch(Action{Type: LoggedOut})
}

// GetCurrentProfile loads the caller's profile into the profile slice.
func (s *Store) GetCurrentProfile() error {
	profile, err := s.api.GetCurrentProfile()
	if err != nil {
		s.Dispatch(Action{Type: ProfileError})
		return err
	}
	s.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	return nil
}

// GetProfiles loads every profile, clearing the current one first.
func (s *Store) GetProfiles() error {
	s.Dispatch(Action{Type: ClearProfile})
	profiles, err := s.api.GetProfiles()
	if err != nil {
		s.Dispatch(Action{Type: ProfileError})
		return err
	}
	s.Dispatch(Action{Type: ProfilesLoaded, Payload: profiles})
	return nil
}

// GetProfileByUserID loads another user's profile.
func (s *Store) GetProfileByUserID(userID uint) error {
	profile, err := s.api.GetProfileByUserID(userID)
	if err != nil {
		s.Dispatch(Action{Type: ProfileError})
		return err
	}
	s.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	return nil
}

// GetGithubRepos loads a user's latest repositories.
func (s *Store) GetGithubRepos(username string) error {
	repos, err := s.api.GetGithubRepos(username)
	if err != nil {
		s.Dispatch(Action{Type: ProfileError})
		return err
	}
	s.Dispatch(Action{Type: ReposLoaded, Payload: repos})
	return nil
}

// CreateProfile creates or updates the caller's profile. edit selects the
// confirmation alert text.
func (s *Store) CreateProfile(form ProfileForm, edit bool) error {
	profile, err := s.api.CreateProfile(form)
	if err != nil {
		s.failAlerts(err)
		s.Dispatch(Action{Type: ProfileError})
		return err
	}
	s.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	if edit {
		s.AddAlert("Profile Updated", "success")
	} else {
		s.AddAlert("Profile Created", "success")
	}
	return nil
}

// AddExperience appends a work-history entry.
func (s *Store) AddExperience(form HistoryForm) error {
	profile, err := s.api.AddExperience(form)
	if err != nil {
		s.failAlerts(err)
		s.Dispatch(Action{Type: ProfileError})
		return err
	}
	s.Dispatch(Action{Type: ProfileUpdated, Payload: profile})
	s.AddAlert("Experience Added", "success")
	return nil
}

// AddEducation appends a schooling entry.
func (s *Store) AddEducation(form HistoryForm) error {
	profile, err := s.api.AddEducation(form)
	if err != nil {
		s.failAlerts(err)
		s.Dispatch(Action{Type: ProfileError})
		return err
	}
	s.Dispatch(Action{Type: ProfileUpdated, Payload: profile})
	s.AddAlert("Education Added", "success")
	return nil
}

// DeleteExperience removes a work-history entry by id.
func (s *Store) DeleteExperience(id uint) error {
	profile, err := s.api.DeleteExperience(id)
	if err != nil {
		s.failAlerts(err)
		s.Dispatch(Action{Type: ProfileError})
		return err
	}
	s.Dispatch(Action{Type: ProfileUpdated, Payload: profile})
	s.AddAlert("Experience Removed", "success")
	return nil
}

// DeleteEducation removes a schooling entry by id.
func (s *Store) DeleteEducation(id uint) error {
	profile, err := s.api.DeleteEducation(id)
	if err != nil {
		s.failAlerts(err)
		s.Dispatch(Action{Type: ProfileError})
		return err
	}
	s.Dispatch(Action{Type: ProfileUpdated, Payload: profile})
	s.AddAlert("Education Removed", "success")
	return nil
}

// DeleteAccount removes the account and downgrades the session.
func (s *Store) DeleteAccount() error {
	if err := s.api.DeleteAccount(); err != nil {
		s.failAlerts(err)
		return err
	}
	s.Dispatch(Action{Type: ClearProfile})
	s.Dispatch(Action{Type: AccountDeleted})
	s.AddAlert("Your account has been permanently deleted", "success")
	return nil
}
