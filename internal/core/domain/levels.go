package domain

// Badge is a derived, non-persisted marker shown next to a user: either a
// score-based reputation level or a fixed role badge. The two are mutually
// exclusive.
type Badge struct {
	Name     string  `json:"name"`
	MinScore float64 `json:"min_score,omitempty"`
	IsRole   bool    `json:"is_role,omitempty"`
}

// ReputationLevels is the ordered score threshold table, lowest first.
// Score = posts*2 + comments*0.5. The weights and thresholds come from the
// original product configuration; they are data, not algorithm.
var ReputationLevels = []Badge{
	{Name: "🐣 มือใหม่หัดโพสต์", MinScore: 0},
	{Name: "🔥 เด็กใหม่ไฟแรง", MinScore: 5},
	{Name: "👑 รุ่นพี่ขาประจำ", MinScore: 15},
	{Name: "📘 ครูประจำชั้น", MinScore: 30},
	{Name: "🧠 กูรูผู้รอบรู้", MinScore: 50},
	{Name: "💖 ขวัญใจชาวบอร์ด", MinScore: 80},
	{Name: "🪄 ตำนานผู้มีของหาจ๊อบจ้า", MinScore: 120},
}

// Fixed role badges. Admins and moderators never receive a score-based level.
var (
	AdminBadge     = Badge{Name: "🌟 ผู้พิทักษ์จักรวาล", IsRole: true}
	ModeratorBadge = Badge{Name: "👮 ผู้ตรวจการ", IsRole: true}
)
