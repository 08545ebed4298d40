package item

type (
	// Top-level entries
	FnID     uint32
	StructID uint32
	AliasID  uint32
	// Sub-entities
	FieldID uint32
	ParamID uint32
	StmtID  uint32
	ExprID  uint32
)

const (
	NoFnID     FnID     = 0
	NoStructID StructID = 0
	NoAliasID  AliasID  = 0
	NoFieldID  FieldID  = 0
	NoParamID  ParamID  = 0
	NoStmtID   StmtID   = 0
	NoExprID   ExprID   = 0
)

func (id FnID) IsValid() bool     { return id != NoFnID }
func (id StructID) IsValid() bool { return id != NoStructID }
func (id AliasID) IsValid() bool  { return id != NoAliasID }
func (id FieldID) IsValid() bool  { return id != NoFieldID }
func (id ParamID) IsValid() bool  { return id != NoParamID }
func (id StmtID) IsValid() bool   { return id != NoStmtID }
func (id ExprID) IsValid() bool   { return id != NoExprID }
