package content

import (
	"strings"
	"time"
)

// Content is the complete, validated content set of the site.
type Content struct {
	Site       Site
	Home       Home
	Resume     Resume
	Portfolios []Portfolio
	Posts      []Post
}

type Site struct {
	Title            string    `yaml:"title"`
	Tagline          string    `yaml:"tagline"`
	URL              string    `yaml:"url"`
	BaseURL          string    `yaml:"baseUrl"`
	Locale           string    `yaml:"locale"`
	TrailingSlash    *bool     `yaml:"trailingSlash"`
	Organization     string    `yaml:"organizationName"`
	Project          string    `yaml:"projectName"`
	DeploymentBranch string    `yaml:"deploymentBranch"`
	OnBrokenLinks    string    `yaml:"onBrokenLinks"`
	ColorMode        ColorMode `yaml:"colorMode"`
	Navbar           Navbar    `yaml:"navbar"`
	Footer           Footer    `yaml:"footer"`
	Blog             Blog      `yaml:"blog"`
}

type ColorMode struct {
	DefaultMode               string `yaml:"defaultMode"`
	RespectPrefersColorScheme bool   `yaml:"respectPrefersColorScheme"`
}

type Navbar struct {
	Title string    `yaml:"title"`
	Items []NavItem `yaml:"items"`
}

// NavItem links either to an internal route (To) or an external URL (Href).
type NavItem struct {
	Label    string `yaml:"label"`
	To       string `yaml:"to"`
	Href     string `yaml:"href"`
	Position string `yaml:"position"`
}

func (n NavItem) Target() string {
	if n.Href != "" {
		return n.Href
	}
	return n.To
}

type Footer struct {
	Style     string `yaml:"style"`
	Copyright string `yaml:"copyright"`
}

type Blog struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	ShowReadingTime bool     `yaml:"showReadingTime"`
	PostsPerPage    int      `yaml:"postsPerPage"`
	Feed            []string `yaml:"feed"`
}

// HasFeed reports whether the feed type (rss or atom) is enabled.
func (b Blog) HasFeed(kind string) bool {
	for _, f := range b.Feed {
		if f == kind {
			return true
		}
	}
	return false
}

type Link struct {
	Label string `yaml:"label"`
	To    string `yaml:"to"`
}

type SocialLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
	Icon  string `yaml:"icon"`
}

type Home struct {
	Description string       `yaml:"description"`
	Headline    Headline     `yaml:"headline"`
	Intro       []string     `yaml:"intro"`
	Actions     []Link       `yaml:"actions"`
	Social      []SocialLink `yaml:"social"`
	Skills      []Skill      `yaml:"skills"`
	Showcase    []Showcase   `yaml:"showcase"`
}

type Headline struct {
	Greeting  string `yaml:"greeting"`
	Highlight string `yaml:"highlight"`
	Closing   string `yaml:"closing"`
}

type Skill struct {
	Title       string   `yaml:"title"`
	Icon        string   `yaml:"icon"`
	Description string   `yaml:"description"`
	Skills      []string `yaml:"skills"`
}

type Showcase struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Link        string   `yaml:"link"`
}

type Resume struct {
	Name        string       `yaml:"name"`
	Role        string       `yaml:"role"`
	Photo       string       `yaml:"photo"`
	Intro       []string     `yaml:"intro"`
	Contacts    []Contact    `yaml:"contacts"`
	Summary     []string     `yaml:"summary"`
	StackGroups []StackGroup `yaml:"stackGroups"`
	Projects    []Project    `yaml:"projects"`
	Education   []string     `yaml:"education"`
}

type Contact struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
	Href  string `yaml:"href"`
}

type StackGroup struct {
	Label string    `yaml:"label"`
	Tags  []TechTag `yaml:"tags"`
}

// TechTag is a technology label with an optional icon image.
type TechTag struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
}

// Project is a résumé project record.
type Project struct {
	Organization string   `yaml:"organization"`
	Title        string   `yaml:"title"`
	Role         string   `yaml:"role"`
	Period       string   `yaml:"period"`
	Stack        string   `yaml:"stack"`
	Members      string   `yaml:"members"`
	Service      string   `yaml:"service"`
	Flows        []Flow   `yaml:"flows"`
	Extras       []string `yaml:"extras"`
}

// StackItems splits the comma-delimited stack into trimmed, non-empty entries.
func (p Project) StackItems() []string {
	var items []string
	for _, s := range strings.Split(p.Stack, ",") {
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// StackTags returns StackItems as icon-less tech tags.
func (p Project) StackTags() []TechTag {
	items := p.StackItems()
	tags := make([]TechTag, len(items))
	for i, item := range items {
		tags[i] = TechTag{Label: item}
	}
	return tags
}

// Flow is one problem/solution/result narrative of a project.
type Flow struct {
	Title    string `yaml:"title"`
	Domain   string `yaml:"domain"`
	Problem  string `yaml:"problem"`
	Solution string `yaml:"solution"`
	Result   string `yaml:"result"`
}

// Portfolio is a long-form project write-up.
type Portfolio struct {
	Slug          string         `yaml:"slug"`
	Order         int            `yaml:"order"`
	Title         string         `yaml:"title"`
	Subtitle      string         `yaml:"subtitle"`
	Summary       Summary        `yaml:"summary"`
	Architecture  Architecture   `yaml:"architecture"`
	Troubles      []Trouble      `yaml:"troubles"`
	Retrospective *Retrospective `yaml:"retrospective"`
	RelatedPosts  []RelatedPost  `yaml:"relatedPosts"`
}

type Summary struct {
	OneLiner    string   `yaml:"oneLiner"`
	Repository  string   `yaml:"repository"`
	Team        string   `yaml:"team"`
	Period      string   `yaml:"period"`
	Role        string   `yaml:"role"`
	RoleDetails []string `yaml:"roleDetails"`
	KeyResult   string   `yaml:"keyResult"`
}

type Architecture struct {
	Stack      string    `yaml:"stack"`
	StackNotes []Note    `yaml:"stackNotes"`
	Structure  string    `yaml:"structure"`
	Trees      []Tree    `yaml:"trees"`
	Diagrams   []Diagram `yaml:"diagrams"`
	FlowChart  *Diagram  `yaml:"flowChart"`
}

type Note struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
}

// Tree is a preformatted directory listing.
type Tree struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Diagram struct {
	Title string `yaml:"title"`
	Src   string `yaml:"src"`
	Alt   string `yaml:"alt"`
}

type Trouble struct {
	Title    string     `yaml:"title"`
	Problem  []string   `yaml:"problem"`
	Action   []string   `yaml:"action"`
	Result   []string   `yaml:"result"`
	Charts   []Diagram  `yaml:"charts"`
	Table    *Table     `yaml:"table"`
	DeepDive []DeepDive `yaml:"deepDive"`
}

type Table struct {
	Headers []string   `yaml:"headers"`
	Rows    [][]string `yaml:"rows"`
}

type DeepDive struct {
	Text string `yaml:"text"`
	Href string `yaml:"href"`
}

type Retrospective struct {
	Achievements []string `yaml:"achievements"`
	Lessons      []string `yaml:"lessons"`
	Closing      string   `yaml:"closing"`
}

type RelatedPost struct {
	Title string `yaml:"title"`
	Href  string `yaml:"href"`
	Note  string `yaml:"note"`
}

// Post is a blog post parsed from a Markdown file with YAML front matter.
type Post struct {
	Slug        string    `yaml:"slug"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Date        time.Time `yaml:"date"`
	Tags        []string  `yaml:"tags"`
	Authors     []string  `yaml:"authors"`

	File    string `yaml:"-"`
	Body    string `yaml:"-"`
	Excerpt string `yaml:"-"`
	// Truncated is set when the body carries a truncate marker.
	Truncated   bool `yaml:"-"`
	ReadingTime int  `yaml:"-"`
}

type TagCount struct {
	Name  string
	Slug  string
	Count int
}
