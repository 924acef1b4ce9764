package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hotel_finder/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 0, 0)

	itemStyle = lipgloss.NewStyle().PaddingLeft(2)

	linkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

var titleCase = cases.Title(language.English)

// RenderResults draws the three result sections. An empty query renders nothing.
func RenderResults(s Snapshot) string {
	if s.Query == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Results for %q", s.Query)))
	b.WriteString("\n")
	b.WriteString(section(domain.Hotels, s.Hotels, func(h domain.Hotel) string {
		return h.HotelName + metaStyle.Render(location(h.City, h.Country)) + " " + link(domain.Hotels, h.ID)
	}))
	b.WriteString(section(domain.Countries, s.Countries, func(c domain.Country) string {
		return fmt.Sprintf("%s (%s) %s", c.Country, c.CountryISOCode, link(domain.Countries, c.ID))
	}))
	b.WriteString(section(domain.Cities, s.Cities, func(c domain.City) string {
		return c.Name + " " + link(domain.Cities, c.ID)
	}))
	return b.String()
}

func section[T any](c domain.Collection, sec Section[T], item func(T) string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(titleCase.String(c.String())))
	b.WriteString("\n")
	switch sec.State {
	case Loading:
		b.WriteString(itemStyle.Render(metaStyle.Render("Loading...")))
	case Failed:
		b.WriteString(itemStyle.Render(errorStyle.Render("An error occurred while fetching data")))
	default:
		if len(sec.Items) == 0 {
			b.WriteString(itemStyle.Render(metaStyle.Render("No " + c.String() + " matched")))
			break
		}
		lines := make([]string, len(sec.Items))
		for i, it := range sec.Items {
			lines[i] = itemStyle.Render("• " + item(it))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}
	b.WriteString("\n")
	return b.String()
}

func link(c domain.Collection, id string) string {
	return linkStyle.Render("/" + c.String() + "/" + id)
}

func location(city, country string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " · " + strings.Join(parts, ", ")
}

// RenderDetail draws one detail page state; fields lists label/value rows for a loaded entity.
func RenderDetail[T any](c domain.Collection, st DetailState[T], fields func(*T) [][2]string) string {
	head := titleStyle.Render(titleCase.String(singular(c)) + " " + st.ID)
	var body string
	switch st.Status {
	case DetailLoading:
		body = metaStyle.Render("Loading...")
	case DetailNotFound:
		body = metaStyle.Render("No " + singular(c) + " with this id")
	case DetailFailed:
		body = errorStyle.Render("An error occurred while fetching data")
	default:
		rows := fields(st.Value)
		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, fmt.Sprintf("%-14s %s", r[0]+":", r[1]))
		}
		body = strings.Join(lines, "\n")
	}
	return head + "\n" + cardStyle.Render(body) + "\n"
}

func HotelFields(h *domain.Hotel) [][2]string {
	return [][2]string{
		{"Hotel", h.HotelName},
		{"Chain", h.ChainName},
		{"City", h.City},
		{"Country", h.Country},
	}
}

func CityFields(c *domain.City) [][2]string {
	return [][2]string{{"City", c.Name}}
}

func CountryFields(c *domain.Country) [][2]string {
	return [][2]string{
		{"Country", c.Country},
		{"ISO code", c.CountryISOCode},
	}
}

func singular(c domain.Collection) string {
	switch c {
	case domain.Cities:
		return "city"
	case domain.Countries:
		return "country"
	}
	return "hotel"
}
