package app

import (
	"fmt"

	"github.com/rcliao/quest-journal/internal/catalog"
)

// RouteKind identifies a view.
type RouteKind uint8

const (
	RouteInfo RouteKind = iota
	RouteTodo
	RouteTodoAction
	RouteMap
	RouteMapLocation
	RouteMapAction
	RouteMapNewQuest
	RouteEdit
	RouteEditQuest
	RouteSettings
)

var routeNames = [...]string{"info", "todo", "todo-action", "map", "map-location", "map-action", "map-new", "edit", "edit-quest", "settings"}

func (k RouteKind) String() string {
	if int(k) < len(routeNames) {
		return routeNames[k]
	}
	return fmt.Sprintf("route(%d)", k)
}

// Route is a view plus the quest and location it is about. Quest and
// Location are only meaningful for the kinds that take them.
type Route struct {
	Kind     RouteKind
	Quest    catalog.QuestID
	Location catalog.LocationID
}

func Info() Route { return Route{Kind: RouteInfo} }
func Todo() Route { return Route{Kind: RouteTodo} }
func Map() Route { return Route{Kind: RouteMap} }
func Edit() Route { return Route{Kind: RouteEdit} }
func Settings() Route { return Route{Kind: RouteSettings} }

func TodoAction(q catalog.QuestID, l catalog.LocationID) Route {
	return Route{Kind: RouteTodoAction, Quest: q, Location: l}
}

func MapLocation(l catalog.LocationID) Route {
	return Route{Kind: RouteMapLocation, Location: l}
}

func MapAction(l catalog.LocationID, q catalog.QuestID) Route {
	return Route{Kind: RouteMapAction, Quest: q, Location: l}
}

func MapNewQuest(l catalog.LocationID) Route {
	return Route{Kind: RouteMapNewQuest, Location: l}
}

func EditQuest(q catalog.QuestID) Route {
	return Route{Kind: RouteEditQuest, Quest: q}
}

// IsMap reports whether the route belongs to the map side of the quest views.
func (r Route) IsMap() bool {
	switch r.Kind {
	case RouteMap, RouteMapLocation, RouteMapAction, RouteMapNewQuest:
		return true
	}
	return false
}

// IsTodo reports whether the route belongs to the to-do side.
func (r Route) IsTodo() bool {
	return r.Kind == RouteTodo || r.Kind == RouteTodoAction
}

// Path renders the route the way it is shown to the user.
func (r Route) Path(locale *catalog.Locale) string {
	switch r.Kind {
	case RouteTodoAction:
		return fmt.Sprintf("todo/%s/%s", locale.QuestName(r.Quest), locale.LocationName(r.Location))
	case RouteMapLocation:
		return fmt.Sprintf("map/%s", locale.LocationName(r.Location))
	case RouteMapAction:
		return fmt.Sprintf("map/%s/%s", locale.LocationName(r.Location), locale.QuestName(r.Quest))
	case RouteMapNewQuest:
		return fmt.Sprintf("map/%s/new", locale.LocationName(r.Location))
	case RouteEditQuest:
		return fmt.Sprintf("edit/%s", locale.QuestName(r.Quest))
	}
	return r.Kind.String()
}

// Router is the navigation history. The last entry is the current route.
type Router struct {
	history []Route
}

// Current returns the current route; Info when nothing was visited yet.
func (r *Router) Current() Route {
	if len(r.history) == 0 {
		return Info()
	}
	return r.history[len(r.history)-1]
}

// Go pushes a route.
func (r *Router) Go(route Route) {
	r.history = append(r.history, route)
}

// Replace swaps the current route.
func (r *Router) Replace(route Route) {
	if len(r.history) == 0 {
		r.history = append(r.history, route)
		return
	}
	r.history[len(r.history)-1] = route
}

// Back drops the current route. With no earlier route it lands on Todo.
func (r *Router) Back() {
	if len(r.history) <= 1 {
		r.history = []Route{Todo()}
		return
	}
	r.history = r.history[:len(r.history)-1]
}

// Len returns the history depth.
func (r *Router) Len() int { return len(r.history) }
