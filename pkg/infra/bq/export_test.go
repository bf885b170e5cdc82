package bq

var (
	BuildDescriptorForTest = buildDescriptor
	EncodeRowForTest       = encodeRow
)
