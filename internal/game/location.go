package game

import (
	"math/rand"
	"strconv"

	"github.com/mmynk/scavhunt/internal/models"
)

// Buildings eligible to host the final location.
var buildings = []string{
	"Library",
	"Science Building",
	"Engineering Hall",
	"Arts Center",
	"Student Center",
}

// RandomLocation generates a fresh final-assembly target: a building, a floor
// from 1-3, an aisle from 1-20 and a section letter A-Z. Called once per game
// when no location exists yet.
func RandomLocation() models.Location {
	return models.Location{
		Building: buildings[rand.Intn(len(buildings))],
		Floor:    rand.Intn(3) + 1,
		Aisle:    rand.Intn(20) + 1,
		Section:  string(rune('A' + rand.Intn(26))),
	}
}

// LocationMatches checks a submitted assembly against the expected location.
// Text fields use the same tolerant matching as riddle answers, so "library"
// satisfies "Library" and "twenty-one" satisfies aisle 21.
func LocationMatches(want models.Location, building, floor, aisle, section string) bool {
	return Matches(want.Building, building) &&
		Matches(strconv.Itoa(want.Floor), floor) &&
		Matches(strconv.Itoa(want.Aisle), aisle) &&
		Matches(want.Section, section)
}
