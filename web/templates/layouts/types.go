package layouts

// PrintLayoutData configures the shell of a printable document.
type PrintLayoutData struct {
	Title         string
	StoreName     string
	GeneratedDate string // DD-MM-YYYY
	GeneratedTime string // HH:MM
	Notice        string // shown above the table when the data is fallback data
}
