package api

import "github.com/guesscode/guesscode-cli/internal/client/models"

// Wire shapes of the GuessCode API. Fields the server may omit are
// pointers; translation into internal models happens here and nowhere
// else.

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the login response. Both fields are required for a
// usable session, but the server contract marks them optional, so the
// caller must check for absence before trusting the pair.
type TokenResponse struct {
	AccessToken *string `json:"accessToken"`
	UserID      *int64  `json:"userId"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type profileInfoDTO struct {
	Username       *string `json:"username"`
	AvatarURL      *string `json:"avatarUrl"`
	Description    *string `json:"description"`
	ActivityStatus *int    `json:"activityStatus"`
	UserID         *int64  `json:"userId"`
}

func (d *profileInfoDTO) toModel() *models.Profile {
	p := &models.Profile{}
	if d.UserID != nil {
		p.UserID = *d.UserID
	}
	if d.Username != nil {
		p.Username = *d.Username
	}
	if d.AvatarURL != nil {
		p.AvatarURL = *d.AvatarURL
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.ActivityStatus != nil {
		p.ActivityStatus = models.ActivityStatus(*d.ActivityStatus)
	}
	return p
}

type answerOptionDTO struct {
	OptionID *int    `json:"optionId"`
	Option   *string `json:"option"`
}

type kataContentDTO struct {
	KataDescription *string           `json:"kataDescription"`
	SourceCode      *string           `json:"sourceCode"`
	AnswerOptions   []answerOptionDTO `json:"answerOptions"`
}

type kataDTO struct {
	ID                  *int64          `json:"id"`
	Title               *string         `json:"title"`
	ProgrammingLanguage *int            `json:"programmingLanguage"`
	KataDifficulty      *int            `json:"kataDifficulty"`
	KataType            *int            `json:"kataType"`
	KataJSONContent     *kataContentDTO `json:"kataJsonContent"`
	AuthorID            *int64          `json:"authorId"`
}

func (d *kataDTO) toModel() models.Kata {
	k := models.Kata{}
	if d.ID != nil {
		k.ID = *d.ID
	}
	if d.Title != nil {
		k.Title = *d.Title
	}
	if d.ProgrammingLanguage != nil {
		k.Language = models.ProgrammingLanguage(*d.ProgrammingLanguage)
	}
	if d.KataDifficulty != nil {
		k.Difficulty = models.KataDifficulty(*d.KataDifficulty)
	}
	if d.KataType != nil {
		k.Type = models.KataType(*d.KataType)
	}
	if d.AuthorID != nil {
		k.AuthorID = *d.AuthorID
	}
	if c := d.KataJSONContent; c != nil {
		if c.KataDescription != nil {
			k.Description = *c.KataDescription
		}
		if c.SourceCode != nil {
			k.SourceCode = *c.SourceCode
		}
		for _, o := range c.AnswerOptions {
			opt := models.AnswerOption{}
			if o.OptionID != nil {
				opt.OptionID = *o.OptionID
			}
			if o.Option != nil {
				opt.Option = *o.Option
			}
			k.AnswerOptions = append(k.AnswerOptions, opt)
		}
	}
	return k
}

type leaderboardPositionDTO struct {
	UserID   *int64  `json:"userId"`
	Username *string `json:"username"`
	Rank     *int    `json:"rank"`
	Rating   *int64  `json:"rating"`
}

func (d *leaderboardPositionDTO) toModel() models.LeaderboardRow {
	r := models.LeaderboardRow{}
	if d.UserID != nil {
		r.UserID = *d.UserID
	}
	if d.Username != nil {
		r.Username = *d.Username
	}
	if d.Rank != nil {
		r.Rank = models.Rank(*d.Rank)
	}
	if d.Rating != nil {
		r.Rating = *d.Rating
	}
	return r
}
