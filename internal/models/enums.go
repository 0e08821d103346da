package models

// Closed enumerations for the content types. Writes outside these lists are
// rejected at the service boundary; unknown values in read filters simply
// match nothing.

const (
	VisibilityPublic  = "Public"
	VisibilityMembers = "Members Only"
	VisibilityPrivate = "Private"

	EventStatusUpcoming = "Upcoming"
	EventStatusOngoing  = "Ongoing"
)

var (
	AnnouncementCategories = []string{"General", "Academic", "Event", "Important", "Club News"}
	AnnouncementPriorities = []string{"Low", "Medium", "High", "Urgent"}

	EventCategories = []string{"Workshop", "Seminar", "Competition", "Social", "Meeting", "Conference", "Other"}
	EventStatuses   = []string{"Upcoming", "Ongoing", "Completed", "Cancelled"}

	ActivityTypes    = []string{"Project", "Competition", "Workshop", "Community Service", "Research", "Achievement", "Other"}
	ActivityStatuses = []string{"Planned", "In Progress", "Completed", "On Hold"}
	Visibilities     = []string{VisibilityPublic, VisibilityMembers, VisibilityPrivate}

	LeaderPositions = []string{
		"Chancellor", "Vice Chancellor", "HOD", "Club President", "Vice President",
		"Secretary", "Treasurer", "Technical Lead", "Event Coordinator", "Other",
	}
	MainPositions = []string{"Chancellor", "Vice Chancellor", "HOD"}
)

const (
	DefaultAnnouncementCategory = "General"
	DefaultAnnouncementPriority = "Medium"
	DefaultEventCategory        = "Other"
	DefaultEventStatus          = "Upcoming"
	DefaultActivityType         = "Other"
	DefaultActivityStatus       = "Planned"
	DefaultVisibility           = VisibilityPublic
)
