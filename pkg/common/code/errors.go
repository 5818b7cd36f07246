package code

var (
	Success = newCode(0, KindOK, "success")

	// input
	ParamErr      = newCode(1001, KindValidation, "parameter error")
	ValidationErr = newCode(1002, KindValidation, "validation failed")
	GeometryErr   = newCode(1003, KindGeometry, "invalid geometry")

	// relations
	ReferentialErr = newCode(2001, KindReferential, "referenced record does not exist")
	FarmNotFound   = newCode(2002, KindReferential, "farm not found")
	FieldNotFound  = newCode(2003, KindReferential, "field not found")
	CropNotFound   = newCode(2004, KindReferential, "crop not found")
	FieldFarmErr   = newCode(2005, KindReferential, "field does not belong to farm")

	RecordNotFound = newCode(3001, KindNotFound, "record not found")

	// lifecycle
	StatusTransitionErr = newCode(4001, KindConflict, "status transition not allowed")
	RecordClosedErr     = newCode(4002, KindConflict, "record is closed for edits")
	DeleteRestrictedErr = newCode(4003, KindConflict, "record is still referenced")

	// storage
	CreateDataErr  = newCode(5001, KindStorage, "create data failed")
	QueryRecordErr = newCode(5002, KindStorage, "query record failed")
	UpdateDataErr  = newCode(5003, KindStorage, "update data failed")
	DeleteDataErr  = newCode(5004, KindStorage, "delete data failed")

	// transport
	UnknownErr         = newCode(9001, KindInternal, "unknown error")
	UnmarshalWSDataErr = newCode(9002, KindValidation, "unmarshal websocket data failed")
	NotifySendMsgErr   = newCode(9003, KindInternal, "send notify message failed")

	NotifyActionAlreadyRegistryErr = newCode(9004, KindInternal, "notify action already registered")
)
