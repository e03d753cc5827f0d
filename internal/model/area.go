package model

// Area identifies one of the facility's operational areas. Areas are a fixed
// set; every goal, checklist item and incident belongs to exactly one.
type Area string

const (
	AreaCleaning     Area = "cleaning"
	AreaGuestService Area = "guest_service"
	AreaGamingFloor  Area = "gaming_floor"
	AreaOperations   Area = "operations"
)

func Areas() []Area {
	return []Area{AreaCleaning, AreaGuestService, AreaGamingFloor, AreaOperations}
}

func (a Area) Valid() bool {
	switch a {
	case AreaCleaning, AreaGuestService, AreaGamingFloor, AreaOperations:
		return true
	}
	return false
}
