package court

// MenuTier selects which slice of a zone's action menu is shown.
type MenuTier string

const (
	TierPrimary   MenuTier = "primary"
	TierSecondary MenuTier = "secondary"
)

// MenuItem is one selectable action: the raw code the engine records plus
// a display label. Code "back" is pure navigation and never recorded.
type MenuItem struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// CodeBack returns from a secondary tier to the primary one. The catalog
// never tracks which tier is showing; that state belongs to the caller.
const CodeBack = "back"

// CodeMore escapes from a primary tier to the secondary one.
const CodeMore = "more"

var commonSecondary = []MenuItem{
	{Code: "assist", Label: "Assist"},
	{Code: "foul", Label: "Foul"},
	{Code: "block", Label: "Block"},
	{Code: "steal", Label: "Steal"},
	{Code: "turnover", Label: "Turnover"},
}

var primaryMenus = map[ZoneName][]MenuItem{
	ZoneFreeThrow: {
		{Code: "make1-ft", Label: "Made FT"},
		{Code: "miss1-ft", Label: "Missed FT"},
		{Code: "rebound", Label: "Rebound"},
	},
	ZonePaint: {
		{Code: "make2-layup", Label: "Made Layup"},
		{Code: "miss2-layup", Label: "Missed Layup"},
		{Code: "rebound", Label: "Rebound"},
		{Code: CodeMore, Label: "More..."},
	},
	ZoneLogoShot: {
		{Code: "make3-logo", Label: "Made Logo 3"},
		{Code: "miss3-logo", Label: "Missed Logo 3"},
		{Code: "rebound", Label: "Rebound"},
	},
	ZoneCornerThree: {
		{Code: "make3-corner", Label: "Made Corner 3"},
		{Code: "miss3-corner", Label: "Missed Corner 3"},
		{Code: "rebound", Label: "Rebound"},
		{Code: CodeMore, Label: "More..."},
	},
	ZoneThreePoint: {
		{Code: "make3-3pt", Label: "Made 3"},
		{Code: "miss3-3pt", Label: "Missed 3"},
		{Code: "rebound", Label: "Rebound"},
		{Code: CodeMore, Label: "More..."},
	},
	ZoneMidRange: {
		{Code: "make2-midrange", Label: "Made Jumper"},
		{Code: "miss2-midrange", Label: "Missed Jumper"},
		{Code: "rebound", Label: "Rebound"},
		{Code: CodeMore, Label: "More..."},
	},
}

var secondaryMenus = map[ZoneName][]MenuItem{
	ZonePaint: appendMenu(
		[]MenuItem{
			{Code: "make2-dunk", Label: "Made Dunk"},
			{Code: "miss2-dunk", Label: "Missed Dunk"},
			{Code: "make2-postup", Label: "Made Post-Up"},
			{Code: "miss2-postup", Label: "Missed Post-Up"},
			{Code: "make2-floater", Label: "Made Floater"},
			{Code: "miss2-floater", Label: "Missed Floater"},
		},
	),
	ZoneCornerThree: appendMenu(nil),
	ZoneThreePoint:  appendMenu(nil),
	ZoneMidRange: appendMenu(
		[]MenuItem{
			{Code: "make2-fadeaway", Label: "Made Fadeaway"},
			{Code: "miss2-fadeaway", Label: "Missed Fadeaway"},
		},
	),
}

func appendMenu(variants []MenuItem) []MenuItem {
	out := append([]MenuItem(nil), variants...)
	out = append(out, commonSecondary...)
	return append(out, MenuItem{Code: CodeBack, Label: "Back"})
}

// Menu returns the ordered action list for a zone and tier. Unknown zones
// fall back to the mid-range set; zones without a secondary tier (free
// throw, logo) return their primary set for either tier.
func Menu(name ZoneName, tier MenuTier) []MenuItem {
	primary, ok := primaryMenus[name]
	if !ok {
		name = ZoneMidRange
		primary = primaryMenus[name]
	}
	if tier == TierSecondary {
		if secondary, ok := secondaryMenus[name]; ok {
			return append([]MenuItem(nil), secondary...)
		}
	}
	return append([]MenuItem(nil), primary...)
}
