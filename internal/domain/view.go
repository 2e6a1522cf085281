package domain

// View represents the current active route
type View int

const (
	ViewStoryList View = iota
	ViewStoryDetail
)

// String returns the display name of the view
func (v View) String() string {
	switch v {
	case ViewStoryList:
		return "Stories"
	case ViewStoryDetail:
		return "Story"
	default:
		return "Unknown"
	}
}

// Shortcut returns the keyboard shortcut for the view
func (v View) Shortcut() string {
	switch v {
	case ViewStoryList:
		return "s"
	default:
		return ""
	}
}

// StatusFilter restricts the story list by effective status
type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterNew        StatusFilter = "new"
	FilterInProgress StatusFilter = "inProgress"
	FilterCompleted  StatusFilter = "completed"
)

// AllFilters returns the status filters in display order
func AllFilters() []StatusFilter {
	return []StatusFilter{
		FilterAll,
		FilterNew,
		FilterInProgress,
		FilterCompleted,
	}
}

// ParseStatusFilter maps a user supplied name onto a StatusFilter
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch s {
	case "", "all":
		return FilterAll, true
	case "new":
		return FilterNew, true
	case "inProgress", "in-progress", "in_progress", "progress":
		return FilterInProgress, true
	case "completed", "done":
		return FilterCompleted, true
	default:
		return FilterAll, false
	}
}

// Label returns the display label of the filter
func (f StatusFilter) Label() string {
	switch f {
	case FilterNew:
		return "New"
	case FilterInProgress:
		return "In Progress"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Matches reports whether the story satisfies the filter
func (f StatusFilter) Matches(s Story) bool {
	switch f {
	case FilterNew:
		return s.EffectiveStatus() == StatusNew
	case FilterInProgress:
		return s.EffectiveStatus() == StatusInProgress
	case FilterCompleted:
		return s.EffectiveStatus() == StatusCompleted
	default:
		return true
	}
}

// Next returns the following filter, wrapping around to FilterAll
func (f StatusFilter) Next() StatusFilter {
	filters := AllFilters()
	for i, candidate := range filters {
		if candidate == f {
			return filters[(i+1)%len(filters)]
		}
	}
	return FilterAll
}

// DetailMode is the display mode selected on the story detail page
type DetailMode int

const (
	ModeWordExplorer DetailMode = iota + 1
	ModeStoryAdventure
	ModeBrainQuest
)

// AllModes returns the detail modes in display order
func AllModes() []DetailMode {
	return []DetailMode{ModeWordExplorer, ModeStoryAdventure, ModeBrainQuest}
}

// String returns the display name of the mode
func (m DetailMode) String() string {
	switch m {
	case ModeWordExplorer:
		return "Word Explorer"
	case ModeStoryAdventure:
		return "Story Adventure"
	case ModeBrainQuest:
		return "Brain Quest"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the known modes
func (m DetailMode) Valid() bool {
	return m >= ModeWordExplorer && m <= ModeBrainQuest
}

// DetailTab is a tab of the Story Adventure panel
type DetailTab int

const (
	TabDetails DetailTab = iota
	TabImage
	TabAuthor
)

// AllTabs returns the tabs in display order
func AllTabs() []DetailTab {
	return []DetailTab{TabDetails, TabImage, TabAuthor}
}

// String returns the display name of the tab
func (t DetailTab) String() string {
	switch t {
	case TabDetails:
		return "Details"
	case TabImage:
		return "Image"
	case TabAuthor:
		return "Author Info"
	default:
		return "Unknown"
	}
}
