package config

// SourceFileExtensions are all recognized expression document extensions
var SourceFileExtensions = []string{".yaml", ".yml"}

// ConfigFileName is looked up next to the inputs when -config is not given.
const ConfigFileName = "logifold.yaml"

// SupportedConfigVersions is the semver constraint a configuration file's
// version must satisfy.
const SupportedConfigVersions = ">= 1.0.0, < 2.0.0"

// Default kinds of the intrinsic types.
const (
	DefaultIntegerKind   = 4
	DefaultRealKind      = 4
	DefaultLogicalKind   = 4
	DefaultCharacterKind = 1
)

// I/O status values defined by the runtime library.
const (
	IostatEnd = -1
	IostatEor = -2
)

// Intrinsic function names with a logical result
const (
	AllFuncName           = "all"
	AnyFuncName           = "any"
	ParityFuncName        = "parity"
	AssociatedFuncName    = "associated"
	BgeFuncName           = "bge"
	BgtFuncName           = "bgt"
	BleFuncName           = "ble"
	BltFuncName           = "blt"
	BtestFuncName         = "btest"
	DotProductFuncName    = "dot_product"
	ExtendsTypeOfFuncName = "extends_type_of"
	IsContiguousFuncName  = "is_contiguous"
	IsIostatEndFuncName   = "is_iostat_end"
	IsIostatEorFuncName   = "is_iostat_eor"
	LgeFuncName           = "lge"
	LgtFuncName           = "lgt"
	LleFuncName           = "lle"
	LltFuncName           = "llt"
	LogicalFuncName       = "logical"
	OutOfRangeFuncName    = "out_of_range"
	SameTypeAsFuncName    = "same_type_as"
)

// IEEE classification names. The builtin spellings are what the
// ieee_arithmetic module resolves to.
const (
	IsNanFuncName          = "isnan"
	IeeeIsNanFuncName      = "__builtin_ieee_is_nan"
	IeeeIsNegativeFuncName = "__builtin_ieee_is_negative"
	IeeeIsNormalFuncName   = "__builtin_ieee_is_normal"
)

// IeeeSupportFuncNames are the IEEE capability queries; every one of them
// is answered .TRUE. at compile time.
var IeeeSupportFuncNames = []string{
	"__builtin_ieee_support_datatype",
	"__builtin_ieee_support_denormal",
	"__builtin_ieee_support_divide",
	"__builtin_ieee_support_inf",
	"__builtin_ieee_support_io",
	"__builtin_ieee_support_nan",
	"__builtin_ieee_support_sqrt",
	"__builtin_ieee_support_standard",
	"__builtin_ieee_support_subnormal",
	"__builtin_ieee_support_underflow_control",
}
