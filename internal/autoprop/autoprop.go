// Package autoprop implements AutoProperties: rules matched against a
// window's class hint that preset its initial state, plus the title
// rewrite grammar used to compute a Client's displayed title (spec.md
// 4.4).
//
// Grounded directly on original_source/src/AutoProperties.cc/.hh: the
// PropertyType bitmask, the ApplyOn phase mask, and the window-type
// default table are transcribed from there. The teacher has nothing
// resembling a rule engine (marwind has no autoproperties concept at
// all), so the property-matching shape here is adapted from the
// original's Property/AutoProperty/TitleProperty class split into a
// single Go struct per rule kind, using stdlib regexp in place of
// RegexString.
package autoprop

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pekwm/pekwm-go/internal/layer"
)

// ApplyOn is a bitmask of the phases during a Client's lifecycle at
// which a Rule is considered (spec.md 4.4 "Apply-on phases").
type ApplyOn uint32

const (
	ApplyOnStart ApplyOn = 1 << iota
	ApplyOnNew
	ApplyOnReload
	ApplyOnWorkspace
	ApplyOnTransient
	ApplyOnAlways = ApplyOnStart | ApplyOnNew | ApplyOnReload | ApplyOnWorkspace | ApplyOnTransient
)

// FieldMask tracks which fields of an AutoProperty a rule actually set,
// so that applying a rule only overwrites fields it mentions
// (spec.md 4.4 "Partial application": "an autoproperty rule only
// touches the fields it explicitly set; everything else is left to
// whatever set it first").
type FieldMask uint32

const (
	FieldSticky FieldMask = 1 << iota
	FieldShaded
	FieldMaximizedVert
	FieldMaximizedHorz
	FieldIconified
	FieldFullscreen
	FieldBorder
	FieldTitlebar
	FieldFrameGeometry
	FieldClientGeometry
	FieldLayer
	FieldWorkspace
	FieldSkip
	FieldPlaceNew
	FieldFocusNew
	FieldFocusable
	FieldCfgDeny
	FieldAllowedActions
	FieldDisallowedActions
	FieldOpacity
	FieldDecor
	FieldPlacement
	FieldGroup
)

// ClassHint is the identifying information read off a window used to
// match rules against (spec.md 4.4 "Matching"): WM_CLASS name/class,
// WM_WINDOW_ROLE, and title.
type ClassHint struct {
	Name, Class, Role, Title string
}

// AutoProperty is the full set of fields a matching rule may preset,
// mirroring original_source's AutoProperty fields minus anything this
// module doesn't otherwise model (icons, window layouter types).
type AutoProperty struct {
	Mask FieldMask

	Sticky, Shaded, Iconified               bool
	MaximizedVert, MaximizedHorz, Fullscreen bool
	Border, Titlebar, Focusable              bool
	PlaceNew, FocusNew                       bool
	Workspace                                int
	Layer                                    layer.Layer
	FocusOpacity, UnfocusOpacity             uint8
	AllowedActions, DisallowedActions        uint32
	Decor                                    string
	Placement                                string

	GroupName         string
	GroupSize         int
	GroupBehind       bool
	GroupFocusedFirst bool
	GroupGlobal       bool
	GroupRaise        bool
}

// matcher holds the regexp matchers and apply-on gating shared by every
// rule kind (original_source's Property base class).
type matcher struct {
	hintName *regexp.Regexp
	hintClass *regexp.Regexp
	role     *regexp.Regexp
	title    *regexp.Regexp
	applyOn  ApplyOn
	workspaces []int
}

func (m *matcher) matchesHint(h ClassHint) bool {
	if m.hintName != nil && !m.hintName.MatchString(h.Name) {
		return false
	}
	if m.hintClass != nil && !m.hintClass.MatchString(h.Class) {
		return false
	}
	if m.role != nil && !m.role.MatchString(h.Role) {
		return false
	}
	if m.title != nil && !m.title.MatchString(h.Title) {
		return false
	}
	return true
}

func (m *matcher) appliesOnWorkspace(ws int) bool {
	if len(m.workspaces) == 0 || ws < 0 {
		return true
	}
	for _, w := range m.workspaces {
		if w == ws {
			return true
		}
	}
	return false
}

func (m *matcher) appliesOn(phase ApplyOn) bool { return m.applyOn&phase != 0 }

// Rule pairs a matcher with the AutoProperty it contributes.
type Rule struct {
	matcher
	Property AutoProperty
}

// TitleRule rewrites a matched window's title via a sed-style
// substitution (spec.md 4.4 supplemented "Title rewriting"), grounded
// on original_source's TitleProperty + RegexString substitution syntax
// `s/pattern/replacement/flags`.
type TitleRule struct {
	matcher
	pattern     *regexp.Regexp
	replacement string
	global      bool
}

// ParseTitleRule parses a `s/pattern/replacement/flags` expression. The
// recognized flags are `g` for global replacement and `i`, which makes
// the pattern match case-insensitively; other flag characters are
// ignored.
func ParseTitleRule(expr string) (*TitleRule, error) {
	if !strings.HasPrefix(expr, "s") || len(expr) < 2 {
		return nil, fmt.Errorf("autoprop: title rule %q: must start with s<delim>", expr)
	}
	delim := expr[1]
	parts := strings.Split(expr[2:], string(delim))
	if len(parts) < 2 {
		return nil, fmt.Errorf("autoprop: title rule %q: expected pattern%creplacement%c...", expr, delim, delim)
	}
	pattern, replacement := parts[0], parts[1]
	flags := ""
	if len(parts) >= 3 {
		flags = parts[2]
	}
	reFlags := ""
	global := false
	for _, f := range flags {
		switch f {
		case 'g':
			global = true
		case 'i':
			reFlags += "i"
		}
	}
	expr2 := pattern
	if reFlags != "" {
		expr2 = "(?" + reFlags + ")" + pattern
	}
	re, err := regexp.Compile(expr2)
	if err != nil {
		return nil, fmt.Errorf("autoprop: title rule %q: %w", expr, err)
	}
	return &TitleRule{pattern: re, replacement: replacement, global: global}, nil
}

// Rewrite applies t's substitution to title, honoring the global flag.
func (t *TitleRule) Rewrite(title string) string {
	if t.global {
		return t.pattern.ReplaceAllString(title, t.replacement)
	}
	loc := t.pattern.FindStringIndex(title)
	if loc == nil {
		return title
	}
	rewritten := t.pattern.ReplaceAllString(title[loc[0]:loc[1]], t.replacement)
	return title[:loc[0]] + rewritten + title[loc[1]:]
}

// Store holds every loaded rule category plus the window-type default
// table (spec.md 4.4).
type Store struct {
	rules         []*Rule
	titleRules    []*TitleRule
	dockAppRules  []*Rule
	windowTypeDefaults map[string]AutoProperty
	harbourSort   bool
}

// NewStore creates an empty Store preloaded with pekwm's documented
// per-window-type defaults (original_source's setDefaultTypeProperties).
func NewStore() *Store {
	s := &Store{windowTypeDefaults: defaultWindowTypeProperties()}
	return s
}

// AddRule registers an autoproperty rule matching hintName/hintClass
// (either may be empty to mean "match anything").
func (s *Store) AddRule(r *Rule) { s.rules = append(s.rules, r) }

// AddTitleRule registers a title-rewrite rule.
func (s *Store) AddTitleRule(r *TitleRule) { s.titleRules = append(s.titleRules, r) }

// AddDockAppRule registers a harbour dockapp placement rule.
func (s *Store) AddDockAppRule(r *Rule) { s.dockAppRules = append(s.dockAppRules, r) }

// SetHarbourSort toggles whether the harbour sorts dockapps by their
// matched rule's position (spec.md 9 Open Question: "Harbour sort
// order").
func (s *Store) SetHarbourSort(v bool) { s.harbourSort = v }

// HarbourSort reports the current harbour-sort setting.
func (s *Store) HarbourSort() bool { return s.harbourSort }

// FindAutoProperty returns the first rule matching hint that applies on
// phase and workspace ws (ws<0 means "don't filter by workspace"),
// merged field-by-field with the window-type default for windowType if
// one exists. An explicit rule field always wins over a type default
// for the same field (spec.md 9 Open Question: "AutoProperty PLACENEW
// vs window-type defaults": explicit rule fields take precedence over
// the type table).
func (s *Store) FindAutoProperty(hint ClassHint, ws int, phase ApplyOn, windowType string) (AutoProperty, bool) {
	result, haveType := s.windowTypeDefaults[windowType]
	var rule *AutoProperty
	for _, r := range s.rules {
		if !r.appliesOn(phase) || !r.appliesOnWorkspace(ws) || !r.matchesHint(hint) {
			continue
		}
		rule = &r.Property
		break
	}
	if rule == nil {
		return result, haveType
	}
	if !haveType {
		return *rule, true
	}
	return mergePreferRule(result, *rule), true
}

// mergePreferRule returns typeDefault overlaid with every field rule
// explicitly set.
func mergePreferRule(typeDefault, rule AutoProperty) AutoProperty {
	out := typeDefault
	mask := rule.Mask
	if mask&FieldSticky != 0 {
		out.Sticky = rule.Sticky
	}
	if mask&FieldShaded != 0 {
		out.Shaded = rule.Shaded
	}
	if mask&FieldMaximizedVert != 0 {
		out.MaximizedVert = rule.MaximizedVert
	}
	if mask&FieldMaximizedHorz != 0 {
		out.MaximizedHorz = rule.MaximizedHorz
	}
	if mask&FieldIconified != 0 {
		out.Iconified = rule.Iconified
	}
	if mask&FieldFullscreen != 0 {
		out.Fullscreen = rule.Fullscreen
	}
	if mask&FieldBorder != 0 {
		out.Border = rule.Border
	}
	if mask&FieldTitlebar != 0 {
		out.Titlebar = rule.Titlebar
	}
	if mask&FieldLayer != 0 {
		out.Layer = rule.Layer
	}
	if mask&FieldWorkspace != 0 {
		out.Workspace = rule.Workspace
	}
	if mask&FieldPlaceNew != 0 {
		out.PlaceNew = rule.PlaceNew
	}
	if mask&FieldFocusNew != 0 {
		out.FocusNew = rule.FocusNew
	}
	if mask&FieldFocusable != 0 {
		out.Focusable = rule.Focusable
	}
	if mask&FieldAllowedActions != 0 {
		out.AllowedActions = rule.AllowedActions
	}
	if mask&FieldDisallowedActions != 0 {
		out.DisallowedActions = rule.DisallowedActions
	}
	if mask&FieldOpacity != 0 {
		out.FocusOpacity, out.UnfocusOpacity = rule.FocusOpacity, rule.UnfocusOpacity
	}
	if mask&FieldDecor != 0 {
		out.Decor = rule.Decor
	}
	if mask&FieldPlacement != 0 {
		out.Placement = rule.Placement
	}
	if mask&FieldGroup != 0 {
		out.GroupName = rule.GroupName
		out.GroupSize = rule.GroupSize
		out.GroupBehind = rule.GroupBehind
		out.GroupFocusedFirst = rule.GroupFocusedFirst
		out.GroupGlobal = rule.GroupGlobal
		out.GroupRaise = rule.GroupRaise
	}
	out.Mask = typeDefault.Mask | mask
	return out
}

// FindTitleRule returns the first title rule matching hint, if any.
func (s *Store) FindTitleRule(hint ClassHint) (*TitleRule, bool) {
	for _, r := range s.titleRules {
		if r.matchesHint(hint) {
			return r, true
		}
	}
	return nil, false
}

// RewriteTitle applies the first matching title rule to hint.Title,
// returning the original title unchanged if no rule matches.
func (s *Store) RewriteTitle(hint ClassHint) string {
	r, ok := s.FindTitleRule(hint)
	if !ok {
		return hint.Title
	}
	return r.Rewrite(hint.Title)
}

// defaultWindowTypeProperties transcribes original_source's
// setDefaultTypeProperties table: desktop/dock/splash windows are
// borderless utility chrome by default (desktop and splash are also
// non-focusable; dock stays focusable and is sticky); normal/dialog
// windows get full decoration.
func defaultWindowTypeProperties() map[string]AutoProperty {
	borderless := AutoProperty{
		Mask:      FieldBorder | FieldTitlebar | FieldFocusable | FieldLayer,
		Border:    false,
		Titlebar:  false,
		Focusable: false,
		Layer:     layer.Desktop,
	}
	dock := borderless
	dock.Layer = layer.Dock
	dock.Focusable = true
	dock.Mask = dock.Mask | FieldSticky
	dock.Sticky = true

	decorated := AutoProperty{
		Mask:      FieldBorder | FieldTitlebar | FieldFocusable | FieldLayer,
		Border:    true,
		Titlebar:  true,
		Focusable: true,
		Layer:     layer.Normal,
	}
	dialog := decorated
	dialog.Mask |= FieldFocusNew
	dialog.FocusNew = true

	splash := borderless
	splash.Layer = layer.Above

	return map[string]AutoProperty{
		"_NET_WM_WINDOW_TYPE_DESKTOP": borderless,
		"_NET_WM_WINDOW_TYPE_DOCK":    dock,
		"_NET_WM_WINDOW_TYPE_SPLASH":  splash,
		"_NET_WM_WINDOW_TYPE_NORMAL":  decorated,
		"_NET_WM_WINDOW_TYPE_DIALOG":  dialog,
	}
}
