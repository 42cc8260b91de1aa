package types

// Footprint 是建筑占用的矩形格子区域（整格）
type Footprint struct {
	Width  int
	Height int
}

// Area 返回占用格子数
func (f Footprint) Area() int {
	if f.Width <= 0 || f.Height <= 0 {
		return 0
	}
	return f.Width * f.Height
}

// 各建筑种类的固定占地尺寸
var (
	TownHallFootprint  = Footprint{Width: 4, Height: 4}
	CollectorFootprint = Footprint{Width: 3, Height: 3}
	StorageFootprint   = Footprint{Width: 4, Height: 4}
	DefenseFootprint   = Footprint{Width: 3, Height: 3}
	WallFootprint      = Footprint{Width: 1, Height: 1}
)

// FootprintFor 返回建筑种类的占地尺寸
// 未知种类返回 (0,0)，网格会拒绝这样的放置
func FootprintFor(kind BuildingKind) Footprint {
	switch kind.Tag {
	case KindTownHall:
		return TownHallFootprint
	case KindCollector:
		return CollectorFootprint
	case KindStorage:
		return StorageFootprint
	case KindDefense:
		return DefenseFootprint
	case KindWall:
		return WallFootprint
	default:
		return Footprint{}
	}
}
