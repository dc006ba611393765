package packet

import (
	"testing"

	"github.com/nesfit/packetnet"
	"github.com/nesfit/packetnet/ieee80211"
	"github.com/stretchr/testify/require"
)

// beacon80211 is a minimal beacon: MAC header, fixed fields, SSID IE.
func beacon80211() []byte {
	frame := make([]byte, 24)
	frame[0] = 0x80 // beacon frame control
	// addr1 broadcast
	for i := 4; i < 10; i++ {
		frame[i] = 0xff
	}
	fixed := make([]byte, 12)
	fixed[8] = 100 // beacon interval
	frame = append(frame, fixed...)
	frame = append(frame, 0x00, 0x03, 'l', 'a', 'b')
	return frame
}

func TestParse80211Beacon(t *testing.T) {
	root, err := Parse(packetnet.LinkIEEE80211, beacon80211())
	require.NoError(t, err)
	require.Equal(t, KindIEEE80211, root.Kind())
	wfrm, ok := root.IEEE80211()
	require.True(t, ok)
	fc := wfrm.FrameControl()
	require.Equal(t, ieee80211.TypeManagement, fc.Type())
	require.Equal(t, ieee80211.SubtypeBeacon, fc.Subtype())

	mfrm, err := wfrm.Management()
	require.NoError(t, err)
	require.Equal(t, uint16(100), mfrm.BeaconInterval())
	var ssid string
	require.NoError(t, mfrm.ForEachIE(func(ie ieee80211.InformationElement) error {
		if ie.ID == ieee80211.IESSID {
			ssid = string(ie.Value)
		}
		return nil
	}))
	require.Equal(t, "lab", ssid)

	_, raw := root.Payload()
	require.Len(t, raw, 12+5)
}

func TestParseRadiotap80211(t *testing.T) {
	radiotapHdr := []byte{
		0x00, 0x00, // version, pad
		0x0a, 0x00, // header length 10
		0x02, 0x00, 0x00, 0x00, // present: Flags
		0x10, // flags
		0x00, // pad to declared length
	}
	frame := append(radiotapHdr, beacon80211()...)
	root, err := Parse(packetnet.LinkRadiotap, frame)
	require.NoError(t, err)
	require.Equal(t, KindRadiotap, root.Kind())
	rfrm, ok := root.Radiotap()
	require.True(t, ok)
	require.Equal(t, uint16(10), rfrm.HeaderLength())

	wlan := root.Child()
	require.NotNil(t, wlan)
	require.Equal(t, KindIEEE80211, wlan.Kind())
	require.Equal(t, root.Header().Offset()+root.Header().Len(), wlan.Header().Offset())
}

func TestParsePPI80211(t *testing.T) {
	ppiHdr := []byte{
		0x00, 0x00, // version, flags
		0x08, 0x00, // header length 8, no fields
		0x69, 0x00, 0x00, 0x00, // DLT 105
	}
	frame := append(ppiHdr, beacon80211()...)
	root, err := Parse(packetnet.LinkPPI, frame)
	require.NoError(t, err)
	require.Equal(t, KindPPI, root.Kind())
	wlan := root.Child()
	require.NotNil(t, wlan)
	require.Equal(t, KindIEEE80211, wlan.Kind())
}
