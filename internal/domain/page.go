package domain

// Page - раздел боковой панели дашборда
type Page string

const (
	PageIntroduction  Page = "introduction"
	PageExploration   Page = "exploration"
	PageVisualisation Page = "visualisation"
	PageModelisation  Page = "modelisation"
	PageConclusion    Page = "conclusion"
)

// Pages в порядке боковой панели
var Pages = []Page{PageIntroduction, PageExploration, PageVisualisation, PageModelisation, PageConclusion}

var pageTitles = map[Page]string{
	PageIntroduction:  "Introduction",
	PageExploration:   "Exploration des données",
	PageVisualisation: "Visualisation",
	PageModelisation:  "Modélisation",
	PageConclusion:    "Conclusion",
}

// ParsePage; пустая строка - первая страница
func ParsePage(s string) (Page, bool) {
	if s == "" {
		return PageIntroduction, true
	}
	p := Page(s)
	_, ok := pageTitles[p]
	return p, ok
}

func (p Page) Title() string {
	return pageTitles[p]
}
