package view

import "fmt"

// Labels holds every user-visible string of the display. Heading and
// MissingData are fmt formats taking the vote number and the data file
// name.
type Labels struct {
	Heading         string `yaml:"heading"`
	Received        string `yaml:"received"`
	Sealed          string `yaml:"sealed"`
	Choice          string `yaml:"choice"`
	Reveal          string `yaml:"reveal"`
	Unlocking       string `yaml:"unlocking"`
	Advance         string `yaml:"advance"`
	Complete        string `yaml:"complete"`
	CandidateColumn string `yaml:"candidate_column"`
	CountColumn     string `yaml:"count_column"`
	Reset           string `yaml:"reset"`
	MissingData     string `yaml:"missing_data"`
}

var Indonesian = Labels{
	Heading:         "SUARA ONLINE #%d",
	Received:        "🕒 Diterima:",
	Sealed:          "SUARA TERSEGEL",
	Choice:          "Pilihan Pemilih:",
	Reveal:          "🔓 BUKA SUARA",
	Unlocking:       "Membuka enkripsi...",
	Advance:         "➡️ LANJUT KE SUARA BERIKUTNYA",
	Complete:        "✅ SELESAI!",
	CandidateColumn: "Kandidat",
	CountColumn:     "Jumlah Suara",
	Reset:           "Reset",
	MissingData:     "File '%s' tidak ditemukan!",
}

var English = Labels{
	Heading:         "ONLINE VOTE #%d",
	Received:        "🕒 Received:",
	Sealed:          "VOTE SEALED",
	Choice:          "Voter's choice:",
	Reveal:          "🔓 OPEN VOTE",
	Unlocking:       "Decrypting...",
	Advance:         "➡️ NEXT VOTE",
	Complete:        "✅ DONE!",
	CandidateColumn: "Candidate",
	CountColumn:     "Votes",
	Reset:           "Reset",
	MissingData:     "File '%s' not found!",
}

// LabelSet returns the built-in labels for a language code, falling back
// to Indonesian.
func LabelSet(lang string) Labels {
	switch lang {
	case "en":
		return English
	default:
		return Indonesian
	}
}

func (l Labels) heading(n int) string {
	return fmt.Sprintf(l.Heading, n)
}

func (l Labels) MissingDataText(file string) string {
	return fmt.Sprintf(l.MissingData, file)
}
