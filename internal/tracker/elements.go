package tracker

import (
	"strings"

	"github.com/julianstephens/hedaya/internal/models"
)

// Stable ids of the tappable parts of the worship tree.
const TrunkElementID = "trunk"

var RootElementIDs = []string{
	"root-fajr",
	"root-dhuhr",
	"root-asr",
	"root-maghrib",
	"root-isha",
}

var BranchElementIDs = []string{
	"branch-sunnah",
	"branch-sadaqa",
	"branch-morning-zikr",
	"branch-sleeping-zikr",
	"branch-evening-zikr",
	"branch-extra-duaa",
	"branch-extra-zikr",
	"branch-extra-salah",
}

// AllElementIDs lists every known element id, trunk first.
func AllElementIDs() []string {
	ids := []string{TrunkElementID}
	ids = append(ids, RootElementIDs...)
	return append(ids, BranchElementIDs...)
}

type ElementKind int

const (
	ElementQuran ElementKind = iota + 1
	ElementPrayer
	ElementBranch
)

// Element is what a tap on a tree element does.
type Element struct {
	ID     string
	Kind   ElementKind
	Prayer models.PrayerName
	Branch models.BranchType
}

// ResolveElement maps an element id to its action. The trunk is the daily
// Quran portion, roots are the five prayers and branches the worship
// branches, each by position.
func ResolveElement(id string) (Element, bool) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == TrunkElementID {
		return Element{ID: id, Kind: ElementQuran}, true
	}
	if i := indexOf(RootElementIDs, id); i >= 0 && i < len(models.AllPrayers) {
		return Element{ID: id, Kind: ElementPrayer, Prayer: models.AllPrayers[i]}, true
	}
	if i := indexOf(BranchElementIDs, id); i >= 0 && i < len(models.AllBranches) {
		return Element{ID: id, Kind: ElementBranch, Branch: models.AllBranches[i]}, true
	}
	return Element{}, false
}

// RootElementID returns the root id at index, clamping out-of-range indexes.
func RootElementID(index int) string {
	return models.OptionAt(RootElementIDs, index)
}

// BranchElementID returns the branch id at index, clamping out-of-range indexes.
func BranchElementID(index int) string {
	return models.OptionAt(BranchElementIDs, index)
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
