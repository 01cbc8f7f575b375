package domain

// SkipRule disables value and rule checks for the listed fields of one API.
type SkipRule struct {
	APIName string   `yaml:"api" mapstructure:"api" validate:"required"`
	Fields  []string `yaml:"fields" mapstructure:"fields" validate:"required,min=1"`
}

// DefaultVolatileFields change on every call; their literal value is not
// compared when a rule exists for them. Names containing "timestamp" or
// ending in "Id" are volatile as well.
var DefaultVolatileFields = []string{
	"expiry_time", "token", "fromTime", "toTime", "fromDate", "toDate", "id",
	"geofenceid", "emergency_contact_id", "request_Id", "shared_link",
	"last_sync", "expiryDateTime",
}

// TemporalFields are checked directly against their time or date rule when
// they appear only in the actual document.
var TemporalFields = []string{
	"expiry_time", "last_sync", "expiryDateTime", "fromTime", "toTime",
	"fromDate", "toDate", "from_time", "to_time", "startDateTime",
	"endDateTime", "start_datetime", "end_datetime", "from_date", "to_date",
	"time_to_share_till",
}

// TemplateFields may carry a constraint descriptor in a request template.
var TemplateFields = []string{
	"fromTime", "toTime", "from_time", "to_time", "startDateTime",
	"endDateTime", "start_datetime", "end_datetime", "from_date", "to_date",
	"fromDate", "toDate", "time_to_share_till",
}

var DefaultSkipRules = []SkipRule{
	{APIName: "addUser", Fields: []string{"app_user_id"}},
	{APIName: "getChargeCumulativeSummary", Fields: []string{"total_charging_time", "total_energy_consumed", "total_charging_sessions"}},
	{APIName: "getHomeChargerChargingCummulativeData", Fields: []string{"numberOfSessions", "chargingTime", "energyConsumedInWh"}},
	{APIName: "getPortableChargerChargingCummulativeData", Fields: []string{"numberOfSessions", "chargingTime", "energyConsumedInWh"}},
}
