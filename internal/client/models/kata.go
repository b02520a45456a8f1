package models

// KataType distinguishes the three exercise styles the platform offers.
type KataType int

const (
	KataReadCode KataType = 1
	KataFixBug   KataType = 2
	KataOptimize KataType = 3
)

func (t KataType) String() string {
	switch t {
	case KataReadCode:
		return "read code"
	case KataFixBug:
		return "fix the bug"
	case KataOptimize:
		return "optimize"
	default:
		return "unknown"
	}
}

// ProgrammingLanguage of a kata's source snippet.
type ProgrammingLanguage int

const (
	LangCSharp     ProgrammingLanguage = 1
	LangJavaScript ProgrammingLanguage = 2
	LangPython     ProgrammingLanguage = 3
	LangGo         ProgrammingLanguage = 4
)

func (l ProgrammingLanguage) String() string {
	switch l {
	case LangCSharp:
		return "C#"
	case LangJavaScript:
		return "JavaScript"
	case LangPython:
		return "Python"
	case LangGo:
		return "Go"
	default:
		return "unknown"
	}
}

// KataDifficulty uses the same kyu-style scale as user ranks: 1 is the
// hardest named level, 20 marks the special "sensei" tier.
type KataDifficulty int

// AnswerOption is one selectable answer of a multiple-choice kata.
type AnswerOption struct {
	OptionID int
	Option   string
}

// Kata is a single exercise: a code snippet plus its answer options.
type Kata struct {
	ID            int64
	Title         string
	Language      ProgrammingLanguage
	Difficulty    KataDifficulty
	Type          KataType
	Description   string
	SourceCode    string
	AnswerOptions []AnswerOption
	AuthorID      int64
}
