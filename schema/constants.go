package schema

// Custom string types for type safety.
type (
	// Dimension identifies one of the twelve trait dimensions.
	Dimension int

	// Tier represents a talent tier assignment.
	Tier string

	// ParamSource says where item parameters came from.
	ParamSource string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for parameter storage.
	DatabaseBackend string
)

// NumDimensions is the fixed number of trait dimensions in the instrument.
const NumDimensions = 12

// The twelve trait dimensions.
const (
	DimDrive         Dimension = 1
	DimStrategic     Dimension = 2
	DimEmpathy       Dimension = 3
	DimCommunication Dimension = 4
	DimAnalytical    Dimension = 5
	DimAdaptability  Dimension = 6
	DimDiscipline    Dimension = 7
	DimInfluence     Dimension = 8
	DimCollaboration Dimension = 9
	DimLearning      Dimension = 10
	DimResilience    Dimension = 11
	DimVision        Dimension = 12
)

// dimensionNames maps each dimension to its display name.
var dimensionNames = map[Dimension]string{
	DimDrive:         "Drive",
	DimStrategic:     "Strategic",
	DimEmpathy:       "Empathy",
	DimCommunication: "Communication",
	DimAnalytical:    "Analytical",
	DimAdaptability:  "Adaptability",
	DimDiscipline:    "Discipline",
	DimInfluence:     "Influence",
	DimCollaboration: "Collaboration",
	DimLearning:      "Learning",
	DimResilience:    "Resilience",
	DimVision:        "Vision",
}

// Name returns the display name for the dimension, or "Unknown" for
// out-of-range values.
func (d Dimension) Name() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether the dimension is within the instrument's range.
func (d Dimension) Valid() bool {
	return d >= 1 && d <= NumDimensions
}

// AllDimensions lists the twelve dimensions in canonical order.
var AllDimensions = []Dimension{
	DimDrive, DimStrategic, DimEmpathy, DimCommunication,
	DimAnalytical, DimAdaptability, DimDiscipline, DimInfluence,
	DimCollaboration, DimLearning, DimResilience, DimVision,
}

// All talent tiers supported.
const (
	DominantTier   Tier = "dominant"
	SupportingTier Tier = "supporting"
	DevelopingTier Tier = "developing"
)

// All parameter sources supported.
const (
	CalibratedParams ParamSource = "calibrated"
	DefaultParams    ParamSource = "default" // shipped fallback, usable before first calibration
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// DefaultDiscrimination is the safe discrimination used for dimensions with
// too few observations and for the shipped default parameter set.
const DefaultDiscrimination = 1.0

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
