package gatt

// This file includes constants from the BLE spec.

var (
	attrPrimaryServiceUUID = UUID16(0x2800)
	attrCharacteristicUUID = UUID16(0x2803)

	attrExtendedPropertiesUUID = UUID16(0x2900)
	attrUserDescriptionUUID    = UUID16(0x2901)
	attrClientConfigUUID       = UUID16(0x2902)
	attrPresentationFormatUUID = UUID16(0x2904)
)

// Well-known SIG UUIDs, for use by service definitions.
var (
	AttrGAPUUID             = UUID16(0x1800)
	AttrGATTUUID            = UUID16(0x1801)
	AttrIPSUUID             = UUID16(0x1820)
	AttrDeviceNameUUID      = UUID16(0x2A00)
	AttrAppearanceUUID      = UUID16(0x2A01)
	AttrPreferredParamsUUID = UUID16(0x2A04)
)

// Presentation format codes and units [Assigned Numbers 2.4.1, 3.5].
const (
	FormatBool   = 0x01
	FormatUint8  = 0x04
	FormatUint16 = 0x06
	FormatSint16 = 0x0e
	FormatUTF8   = 0x19

	UnitNone    = 0x2700
	UnitCelsius = 0x272f
	UnitPercent = 0x27ad
)

const (
	namespaceSIG   = 0x01 // presentation format namespace: Bluetooth SIG
	findInfoUUID16 = 0x01 // find information response format: 16-bit UUIDs

	// ATT_MTU bounds [Vol 3, Part F, 3.2.8].
	minMTU = 23
	maxMTU = 517
)
