package importer

// Profile describes a header layout the CSV parser understands.
// Each field lists the accepted names for that column, compared case-insensitively.
type Profile struct {
	Name     string
	ID       []string
	Date     []string
	Category []string
	Amount   []string
	Note     []string
	DayFirst bool // dates may be written DD-MM-YYYY
}

// profiles is the ordered list of layouts tried during auto-detection.
var profiles = []Profile{
	{
		Name:     "records",
		ID:       []string{"id"},
		Date:     []string{"date"},
		Category: []string{"category"},
		Amount:   []string{"amount"},
		Note:     []string{"note", "item", "description"},
	},
	{
		Name:     "spreadsheet",
		Date:     []string{"data", "data mov.", "fecha", "datum"},
		Category: []string{"categoria", "categoría", "kategorie"},
		Amount:   []string{"montante", "importo", "importe", "betrag", "valor"},
		Note:     []string{"descrição", "descrizione", "descripción", "beschreibung", "nota"},
		DayFirst: true,
	},
}

type columns struct {
	id, date, category, amount, note int
}

// match locates the profile's columns in the header. ID and note are optional.
func (p Profile) match(header map[string]int) (columns, bool) {
	find := func(names []string) int {
		for _, n := range names {
			if i, ok := header[n]; ok {
				return i
			}
		}

		return -1
	}

	c := columns{
		id:       find(p.ID),
		date:     find(p.Date),
		category: find(p.Category),
		amount:   find(p.Amount),
		note:     find(p.Note),
	}

	if c.date < 0 || c.category < 0 || c.amount < 0 {
		return columns{}, false
	}

	return c, true
}
