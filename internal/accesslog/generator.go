package accesslog

import (
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Generation distribution constants.
const (
	businessHoursShare = 0.7  // share of events during 08:00-18:00
	successRate        = 0.95 // share of successful events
	escortRate         = 0.1  // share of escorted visits
	minVisitSeconds    = 1800
	maxVisitSeconds    = 28800
)

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
	"William", "Barbara", "David", "Elizabeth", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Christopher", "Karen", "Daniel", "Nancy", "Matthew", "Lisa",
	"Anthony", "Betty", "Mark", "Margaret", "Donald", "Sandra", "Steven", "Ashley",
	"Andrew", "Kimberly", "Paul", "Emily", "Joshua", "Donna", "Kenneth", "Michelle",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
	"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young",
	"Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
}

var methods = []Method{MethodBadge, MethodPIN, MethodBiometric, MethodBadgePIN}

var denialReasons = []string{
	"Invalid badge",
	"Access outside authorized hours",
	"Badge expired",
	"Zone access denied",
	"Escort required",
}

// GeneratorAsset is the slice of asset metadata the generator needs.
type GeneratorAsset struct {
	ID         string
	Name       string
	LocationID string
	ZoneID     string
}

// Generator produces synthetic access histories. The random source is
// injected so tests can fix a seed.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator over the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, now: time.Now}
}

// Generate produces an access history for one tenant covering the given
// number of days, averaging logsPerDay events (daily count varies
// 80-120%). Logs are returned newest first.
func (g *Generator) Generate(tenantID string, assets []GeneratorAsset, days, logsPerDay int) []Log {
	if len(assets) == 0 || days <= 0 || logsPerDay <= 0 {
		return []Log{}
	}

	logs := []Log{}
	now := g.now()

	for day := 0; day < days; day++ {
		baseDate := now.AddDate(0, 0, -day)
		count := int(float64(logsPerDay) * (0.8 + g.rng.Float64()*0.4))

		for i := 0; i < count; i++ {
			asset := assets[g.rng.Intn(len(assets))]
			logs = append(logs, g.generateEvent(tenantID, asset, baseDate))
		}
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs
}

func (g *Generator) generateEvent(tenantID string, asset GeneratorAsset, baseDate time.Time) Log {
	success := g.rng.Float64() < successRate
	action := ActionDenied
	if success {
		action = ActionEntry
		if g.rng.Float64() < 0.5 {
			action = ActionExit
		}
	}

	door := "A"
	if g.rng.Float64() < 0.5 {
		door = "B"
	}

	l := Log{
		ID:          uuid.NewString(),
		Timestamp:   g.weightedTimestamp(baseDate),
		TenantID:    tenantID,
		PersonName:  g.randomName(),
		BadgeID:     g.badgeID(),
		AccessPoint: asset.Name + "-Door-" + door,
		LocationID:  asset.LocationID,
		ZoneID:      asset.ZoneID,
		AssetID:     asset.ID,
		Action:      action,
		Method:      methods[g.rng.Intn(len(methods))],
		Success:     success,
	}

	if action == ActionExit {
		l.DurationSeconds = minVisitSeconds + g.rng.Intn(maxVisitSeconds-minVisitSeconds)
	}
	if action == ActionDenied {
		l.DenialReason = denialReasons[g.rng.Intn(len(denialReasons))]
	}
	if g.rng.Float64() < escortRate {
		l.EscortName = g.randomName()
	}

	return l
}

// weightedTimestamp places most events inside business hours. Off-hours
// picks shift daytime draws out of the 08:00-18:00 window.
func (g *Generator) weightedTimestamp(baseDate time.Time) time.Time {
	var hour int
	if g.rng.Float64() < businessHoursShare {
		hour = 8 + g.rng.Intn(10)
	} else {
		hour = g.rng.Intn(24)
		if hour >= 8 && hour < 18 {
			hour = (hour + 10) % 24
		}
	}

	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(),
		hour, g.rng.Intn(60), g.rng.Intn(60), 0, baseDate.Location())
}

func (g *Generator) randomName() string {
	return firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))]
}

func (g *Generator) badgeID() string {
	return "BADGE-" + strconv.Itoa(1000+g.rng.Intn(9000))
}
