package holiday

import (
	"time"

	"github.com/hyaku122/kintai-final/pkg/dateutil"
)

// Holiday names.
const (
	NewYearsDay        = "元日"
	ComingOfAgeDay     = "成人の日"
	FoundationDay      = "建国記念の日"
	EmperorsBirthday   = "天皇誕生日"
	VernalEquinoxDay   = "春分の日"
	ShowaDay           = "昭和の日"
	GreeneryDay        = "みどりの日"
	ConstitutionDay    = "憲法記念日"
	ChildrensDay       = "こどもの日"
	MarineDay          = "海の日"
	MountainDay        = "山の日"
	RespectForAgedDay  = "敬老の日"
	AutumnalEquinoxDay = "秋分の日"
	HealthSportsDay    = "体育の日"
	SportsDay          = "スポーツの日"
	CultureDay         = "文化の日"
	LaborThanksgiving  = "勤労感謝の日"
	Substitute         = "振替休日"
	Citizens           = "国民の休日"

	CrownPrinceWedding  = "皇太子明仁親王の結婚の儀"
	ShowaFuneral        = "昭和天皇の大喪の礼"
	Enthronement        = "即位礼正殿の儀"
	CrownPrinceWedding2 = "皇太子徳仁親王の結婚の儀"
	Accession           = "天皇の即位の日"
)

// DayFunc returns the day of month a rule falls on in the given year.
type DayFunc func(year int) int

// Rule is one primary holiday: a month, a day function and the years it is in force.
// FromYear 0 means no lower bound; ToYear 0 means the rule is still in force.
type Rule struct {
	Name     string
	Month    time.Month
	FromYear int
	ToYear   int
	Day      DayFunc
}

func (r Rule) activeIn(year int) bool {
	return (r.FromYear == 0 || year >= r.FromYear) && (r.ToYear == 0 || year <= r.ToYear)
}

// Matches reports whether the rule places a holiday on the date.
func (r Rule) Matches(year int, month time.Month, day int) bool {
	return month == r.Month && r.activeIn(year) && r.Day(year) == day
}

func fixed(day int) DayFunc {
	return func(int) int { return day }
}

func happyMonday(month time.Month, n int) DayFunc {
	return func(year int) int {
		day, err := dateutil.NthWeekdayOfMonth(year, month, time.Monday, n)
		if err != nil {
			return 0
		}
		return day
	}
}

func equinox(kind dateutil.Equinox) DayFunc {
	return func(year int) int { return dateutil.EquinoxDay(kind, year) }
}

func oneOff(name string, year int, month time.Month, day int) Rule {
	return Rule{Name: name, Month: month, FromYear: year, ToYear: year, Day: fixed(day)}
}

// rules is evaluated in order; the first matching rule names the day.
var rules = []Rule{
	{Name: NewYearsDay, Month: time.January, Day: fixed(1)},
	{Name: ComingOfAgeDay, Month: time.January, ToYear: 1999, Day: fixed(15)},
	{Name: ComingOfAgeDay, Month: time.January, FromYear: 2000, Day: happyMonday(time.January, 2)},
	{Name: FoundationDay, Month: time.February, FromYear: 1967, Day: fixed(11)},
	{Name: EmperorsBirthday, Month: time.February, FromYear: 2020, Day: fixed(23)},
	{Name: VernalEquinoxDay, Month: time.March, Day: equinox(dateutil.Vernal)},
	{Name: EmperorsBirthday, Month: time.April, FromYear: 1927, ToYear: 1988, Day: fixed(29)},
	{Name: GreeneryDay, Month: time.April, FromYear: 1989, ToYear: 2006, Day: fixed(29)},
	{Name: ShowaDay, Month: time.April, FromYear: 2007, Day: fixed(29)},
	{Name: ConstitutionDay, Month: time.May, Day: fixed(3)},
	{Name: GreeneryDay, Month: time.May, FromYear: 2007, Day: fixed(4)},
	{Name: ChildrensDay, Month: time.May, Day: fixed(5)},

	oneOff(MarineDay, 2020, time.July, 23),
	oneOff(MarineDay, 2021, time.July, 22),
	oneOff(SportsDay, 2020, time.July, 24),
	oneOff(SportsDay, 2021, time.July, 23),
	{Name: MarineDay, Month: time.July, FromYear: 1996, ToYear: 2002, Day: fixed(20)},
	{Name: MarineDay, Month: time.July, FromYear: 2003, ToYear: 2019, Day: happyMonday(time.July, 3)},
	{Name: MarineDay, Month: time.July, FromYear: 2022, Day: happyMonday(time.July, 3)},

	oneOff(MountainDay, 2020, time.August, 10),
	oneOff(MountainDay, 2021, time.August, 8),
	{Name: MountainDay, Month: time.August, FromYear: 2016, ToYear: 2019, Day: fixed(11)},
	{Name: MountainDay, Month: time.August, FromYear: 2022, Day: fixed(11)},

	{Name: RespectForAgedDay, Month: time.September, FromYear: 1966, ToYear: 2002, Day: fixed(15)},
	{Name: RespectForAgedDay, Month: time.September, FromYear: 2003, Day: happyMonday(time.September, 3)},
	{Name: AutumnalEquinoxDay, Month: time.September, Day: equinox(dateutil.Autumnal)},

	{Name: HealthSportsDay, Month: time.October, FromYear: 1966, ToYear: 1999, Day: fixed(10)},
	{Name: HealthSportsDay, Month: time.October, FromYear: 2000, ToYear: 2019, Day: happyMonday(time.October, 2)},
	{Name: SportsDay, Month: time.October, FromYear: 2022, Day: happyMonday(time.October, 2)},
	{Name: CultureDay, Month: time.November, Day: fixed(3)},
	{Name: LaborThanksgiving, Month: time.November, Day: fixed(23)},
	{Name: EmperorsBirthday, Month: time.December, FromYear: 1989, ToYear: 2018, Day: fixed(23)},

	// Imperial ceremonies, each enacted by its own law.
	oneOff(CrownPrinceWedding, 1959, time.April, 10),
	oneOff(ShowaFuneral, 1989, time.February, 24),
	oneOff(Enthronement, 1990, time.November, 12),
	oneOff(CrownPrinceWedding2, 1993, time.June, 9),
	oneOff(Accession, 2019, time.May, 1),
	oneOff(Enthronement, 2019, time.October, 22),
}

// Rules returns a copy of the primary holiday table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
