package service

import (
	"strings"

	"github.com/courtkeeper/courtside/internal/model"
)

// Defaults are the configured fallback settings for new sessions.
type Defaults struct {
	PeriodSeconds    int
	ShotClockSeconds int
	TimeoutsPerTeam  int
	FoulLimit        int
}

// StandardDefaults mirror a typical FIBA/NBA tracking setup.
var StandardDefaults = Defaults{
	PeriodSeconds:    600,
	ShotClockSeconds: 24,
	TimeoutsPerTeam:  7,
	FoulLimit:        5,
}

func (d Defaults) orStandard() Defaults {
	std := StandardDefaults
	if d.PeriodSeconds > 0 {
		std.PeriodSeconds = d.PeriodSeconds
	}
	if d.ShotClockSeconds > 0 {
		std.ShotClockSeconds = d.ShotClockSeconds
	}
	if d.TimeoutsPerTeam > 0 {
		std.TimeoutsPerTeam = d.TimeoutsPerTeam
	}
	if d.FoulLimit > 0 {
		std.FoulLimit = d.FoulLimit
	}
	return std
}

// resolveSettings merges client input over the configured defaults and
// validates the enumerations.
func (s *sessionService) resolveSettings(in SettingsInput) (model.Settings, []FieldError) {
	d := s.defaults
	settings := model.Settings{
		CourtStandard:    model.CourtNBA,
		PeriodFormat:     model.FormatQuarters,
		PeriodSeconds:    d.PeriodSeconds,
		ShotClockEnabled: true,
		ShotClockSeconds: d.ShotClockSeconds,
		TimeoutsPerTeam:  d.TimeoutsPerTeam,
		FoulLimit:        d.FoulLimit,
	}

	var ferrs []FieldError

	if v := strings.ToLower(strings.TrimSpace(in.CourtStandard)); v != "" {
		switch model.CourtStandard(v) {
		case model.CourtNBA, model.CourtFIBA:
			settings.CourtStandard = model.CourtStandard(v)
		default:
			ferrs = append(ferrs, FieldError{Field: "court_standard", Message: "must be nba or fiba"})
		}
	}
	if v := strings.ToLower(strings.TrimSpace(in.PeriodFormat)); v != "" {
		switch model.PeriodFormat(v) {
		case model.FormatQuarters, model.FormatHalves:
			settings.PeriodFormat = model.PeriodFormat(v)
		default:
			ferrs = append(ferrs, FieldError{Field: "period_format", Message: "must be quarters or halves"})
		}
	}
	if in.PeriodSeconds != 0 {
		if in.PeriodSeconds < 60 || in.PeriodSeconds > 1200 {
			ferrs = append(ferrs, FieldError{Field: "period_seconds", Message: "must be between 60 and 1200"})
		} else {
			settings.PeriodSeconds = in.PeriodSeconds
		}
	}
	if in.ShotClockEnabled != nil {
		settings.ShotClockEnabled = *in.ShotClockEnabled
	}
	if in.ShotClockSeconds != 0 {
		if in.ShotClockSeconds < 10 || in.ShotClockSeconds > 60 {
			ferrs = append(ferrs, FieldError{Field: "shot_clock_seconds", Message: "must be between 10 and 60"})
		} else {
			settings.ShotClockSeconds = in.ShotClockSeconds
		}
	}
	if in.TimeoutsPerTeam != 0 {
		if in.TimeoutsPerTeam < 0 || in.TimeoutsPerTeam > 10 {
			ferrs = append(ferrs, FieldError{Field: "timeouts_per_team", Message: "must be between 0 and 10"})
		} else {
			settings.TimeoutsPerTeam = in.TimeoutsPerTeam
		}
	}
	if in.FoulLimit != 0 {
		if in.FoulLimit < 0 || in.FoulLimit > 20 {
			ferrs = append(ferrs, FieldError{Field: "foul_limit", Message: "must be between 0 and 20"})
		} else {
			settings.FoulLimit = in.FoulLimit
		}
	}
	return settings, ferrs
}
