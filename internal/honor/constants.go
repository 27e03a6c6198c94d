package honor

// Honor score bounds
const (
	MinScore = -5
	MaxScore = 5
)
