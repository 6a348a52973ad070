package services

import (
	"time"

	"github.com/jugehoerig/vereinsapi/internal/models"
)

var (
	board  = models.Actor{ID: 1, Username: "praesidentin", Roles: []string{models.RoleVorstand}}
	admin  = models.Actor{ID: 2, Username: "root", Roles: []string{models.RoleAdmin}}
	member = models.Actor{ID: 3, Username: "mitglied", Roles: []string{"mitglied"}}
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
