// Package models defines the core data structures for Tally.
package models

import (
	"strings"
	"time"
)

// App represents a tracked application. The BundleID is the stable opaque
// identifier reported by the capture source; ID is the internal key used by
// counter rows and sessions. Apps are created on first observation and never
// deleted.
type App struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BundleID string `gorm:"size:255;uniqueIndex;not null" json:"bundle_id"`
	Name     string `gorm:"size:255" json:"name"`

	// Category is auto-assigned from the bundle id on creation and may be
	// overridden by the user afterwards.
	Category      AppCategory `gorm:"size:50;index;default:other" json:"category"`
	IsDistraction bool        `gorm:"default:false" json:"is_distraction"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (App) TableName() string {
	return "apps"
}

// AppCategory groups applications for productivity scoring.
type AppCategory string

const (
	CategoryDevelopment   AppCategory = "development"
	CategoryBrowser       AppCategory = "browser"
	CategoryCommunication AppCategory = "communication"
	CategoryProductivity  AppCategory = "productivity"
	CategoryDesign        AppCategory = "design"
	CategoryMedia         AppCategory = "media"
	CategorySocial        AppCategory = "social"
	CategoryGames         AppCategory = "games"
	CategoryUtilities     AppCategory = "utilities"
	CategoryOther         AppCategory = "other"
)

// AllCategories returns every assignable category.
func AllCategories() []AppCategory {
	return []AppCategory{
		CategoryDevelopment,
		CategoryBrowser,
		CategoryCommunication,
		CategoryProductivity,
		CategoryDesign,
		CategoryMedia,
		CategorySocial,
		CategoryGames,
		CategoryUtilities,
		CategoryOther,
	}
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c AppCategory) bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// categoryRule maps a bundle-id fragment to a category. Prefix rules match
// the start of the bundle id; substring rules match anywhere. Prefix rules
// win over substring rules.
type categoryRule struct {
	fragment string
	prefix   bool
	category AppCategory
}

var categoryRules = []categoryRule{
	// Prefix rules: vendor namespaces.
	{"com.apple.dt.", true, CategoryDevelopment}, // Xcode and friends
	{"com.jetbrains.", true, CategoryDevelopment},
	{"com.microsoft.VSCode", true, CategoryDevelopment},
	{"com.googlecode.iterm2", true, CategoryDevelopment},
	{"com.apple.Terminal", true, CategoryDevelopment},
	{"com.github.", true, CategoryDevelopment},
	{"com.sublimetext.", true, CategoryDevelopment},
	{"dev.zed.", true, CategoryDevelopment},
	{"com.google.Chrome", true, CategoryBrowser},
	{"com.apple.Safari", true, CategoryBrowser},
	{"org.mozilla.firefox", true, CategoryBrowser},
	{"com.brave.Browser", true, CategoryBrowser},
	{"company.thebrowser.Browser", true, CategoryBrowser}, // Arc
	{"com.tinyspeck.slackmacgap", true, CategoryCommunication},
	{"com.hnc.Discord", true, CategoryCommunication},
	{"us.zoom.xos", true, CategoryCommunication},
	{"com.apple.mail", true, CategoryCommunication},
	{"com.microsoft.teams", true, CategoryCommunication},
	{"ru.keepcoder.Telegram", true, CategoryCommunication},
	{"net.whatsapp.WhatsApp", true, CategoryCommunication},
	{"com.apple.Notes", true, CategoryProductivity},
	{"com.apple.iCal", true, CategoryProductivity},
	{"md.obsidian", true, CategoryProductivity},
	{"notion.id", true, CategoryProductivity},
	{"com.culturedcode.ThingsMac", true, CategoryProductivity},
	{"com.microsoft.Word", true, CategoryProductivity},
	{"com.microsoft.Excel", true, CategoryProductivity},
	{"com.figma.Desktop", true, CategoryDesign},
	{"com.bohemiancoding.sketch3", true, CategoryDesign},
	{"com.adobe.", true, CategoryDesign},
	{"com.spotify.client", true, CategoryMedia},
	{"com.apple.Music", true, CategoryMedia},
	{"com.apple.TV", true, CategoryMedia},
	{"com.netflix.", true, CategoryMedia},
	{"com.apple.QuickTimePlayerX", true, CategoryMedia},
	{"com.valvesoftware.steam", true, CategoryGames},
	{"com.apple.finder", true, CategoryUtilities},
	{"com.apple.systempreferences", true, CategoryUtilities},
	{"com.apple.ActivityMonitor", true, CategoryUtilities},

	// Substring rules: looser matches for unknown vendors.
	{"vscode", false, CategoryDevelopment},
	{"terminal", false, CategoryDevelopment},
	{"intellij", false, CategoryDevelopment},
	{"browser", false, CategoryBrowser},
	{"chrome", false, CategoryBrowser},
	{"firefox", false, CategoryBrowser},
	{"slack", false, CategoryCommunication},
	{"messenger", false, CategorySocial},
	{"twitter", false, CategorySocial},
	{"instagram", false, CategorySocial},
	{"tiktok", false, CategorySocial},
	{"reddit", false, CategorySocial},
	{"youtube", false, CategoryMedia},
	{"spotify", false, CategoryMedia},
	{"game", false, CategoryGames},
	{"steam", false, CategoryGames},
}

// distractionCategories are categories whose active time counts against the
// productivity score by default. The per-app flag can override either way.
var distractionCategories = map[AppCategory]bool{
	CategorySocial: true,
	CategoryMedia:  true,
	CategoryGames:  true,
}

// CategoryFor resolves a bundle id to a category using the static rule
// table, defaulting to CategoryOther when no rule matches.
func CategoryFor(bundleID string) AppCategory {
	lower := strings.ToLower(bundleID)
	for _, rule := range categoryRules {
		if !rule.prefix {
			continue
		}
		if strings.HasPrefix(bundleID, rule.fragment) {
			return rule.category
		}
	}
	for _, rule := range categoryRules {
		if rule.prefix {
			continue
		}
		if strings.Contains(lower, rule.fragment) {
			return rule.category
		}
	}
	return CategoryOther
}

// DefaultDistraction returns the default distraction flag for a category.
func DefaultDistraction(c AppCategory) bool {
	return distractionCategories[c]
}
