package achievement

import "strings"

const (
	FirstKilogram    = 1
	GreenPioneer     = 2
	SafeCorridor     = 3
	ZeroCarbon       = 4
	PointsMaster     = 5
	CampusExplorer   = 6
	carbonTargetKg   = 1.0
	streakTargetDays = 7
	safeTripsTarget  = 10
	zeroTripsTarget  = 30
	pointsTarget     = 1000
)

type Definition struct {
	ID          int
	Title       string
	Description string
}

var catalog = []Definition{
	{FirstKilogram, "Eco Starter", "Save 1 kg of CO2 in total"},
	{GreenPioneer, "Green Pioneer", "Travel low-carbon 7 days in a row"},
	{SafeCorridor, "Dragon Pond Safety Expert", "Use the Dragon Pond Road safe corridor 10 times"},
	{ZeroCarbon, "Zero-Carbon Commuter", "Make 30 walking or cycling trips"},
	{PointsMaster, "Yunlin Green Master", "Earn 1000 green points"},
	{CampusExplorer, "Campus Explorer", "Visit every major campus building"},
}

// Catalog returns a copy of the achievement definitions in display order.
func Catalog() []Definition {
	return append([]Definition(nil), catalog...)
}

// Landmark is a campus place recognised inside free-text trip labels.
type Landmark struct {
	ID   string
	Name string
}

// Labels are free text, so a landmark matches when its local name appears
// anywhere in the label or the label contains its catalog id. This is an
// approximation kept for historical records that predate location ids.
func (l Landmark) MatchedBy(label string) bool {
	if label == "" {
		return false
	}
	return strings.Contains(label, l.Name) || strings.Contains(strings.ToLower(label), l.ID)
}

var safeCorridor = Landmark{ID: "dragon_pond", Name: "龍潭"}

var campusLandmarks = []Landmark{
	{ID: "library", Name: "圖書館"},
	{ID: "administration", Name: "行政大樓"},
	{ID: "dormitory", Name: "學生宿舍"},
	{ID: "gymnasium", Name: "體育館"},
	{ID: "engineering", Name: "工程學院"},
}

func CampusLandmarks() []Landmark {
	return append([]Landmark(nil), campusLandmarks...)
}
