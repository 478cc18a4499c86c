package nav

// Link is one entry of the top navigation bar.
type Link struct {
	Label  string
	Href   string
	Active bool
}

// TopNavData is shared with page renderers.
type TopNavData struct {
	Links   []Link
	IsAdmin bool
}

// BuildTopNavData marks the link matching activePath. Admin sessions get
// the console link and a logout button.
func BuildTopNavData(activePath string, isAdmin bool) TopNavData {
	links := []Link{
		{Label: "Inicio", Href: "/"},
		{Label: "Quiénes Somos", Href: "/about"},
		{Label: "Contacto", Href: "/contacto"},
	}
	if isAdmin {
		links = append(links, Link{Label: "Administración", Href: "/admin"})
	}
	for i := range links {
		links[i].Active = isActive(links[i].Href, activePath)
	}
	return TopNavData{Links: links, IsAdmin: isAdmin}
}

func isActive(href, path string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || len(path) > len(href) && path[:len(href)+1] == href+"/"
}
