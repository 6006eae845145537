package route

import (
	"github.com/tiseno100/chipset-reversing/emu/log"
	"github.com/tiseno100/chipset-reversing/hw/hwdefs"
	"github.com/tiseno100/chipset-reversing/hw/hwio"
)

// IDE is the IDE controller primitive.
type IDE interface {
	EnableChannel(ch hwdefs.Channel)
	DisableChannel(ch hwdefs.Channel)
	SetBase(ch hwdefs.Channel, port uint16)
	SetSide(ch hwdefs.Channel, port uint16)
}

// Channel is the configuration of an IDE channel.
type Channel struct {
	Enabled bool
	Cmd     uint16 // command block base
	Ctl     uint16 // control block base
}

// ChannelPair says which channels are enabled for a given enable field value.
type ChannelPair struct {
	Primary   bool
	Secondary bool
}

// IDEConfig describes the IDE channel control bits.
type IDEConfig struct {
	// Enable is indexed into Channels. Values outside Channels disable both
	// channels.
	Enable   hwio.Field
	Channels []ChannelPair

	// Gates must all be set for any channel to be enabled (master enable,
	// function enable...).
	Gates []hwio.Bit

	// Swap, if set, gives the primary channel the secondary legacy
	// addresses and conversely.
	Swap *hwio.Bit
}

// Decode returns the configuration of both channels.
func (c *IDEConfig) Decode(regs hwio.Regs) [hwdefs.NumIDEChannel]Channel {
	chans := [hwdefs.NumIDEChannel]Channel{
		hwdefs.Primary:   {Cmd: hwdefs.PrimaryCmd, Ctl: hwdefs.PrimaryCtl},
		hwdefs.Secondary: {Cmd: hwdefs.SecondaryCmd, Ctl: hwdefs.SecondaryCtl},
	}
	if c.Swap != nil && c.Swap.IsSet(regs, 0) {
		chans[0], chans[1] = chans[1], chans[0]
	}

	for _, g := range c.Gates {
		if !g.IsSet(regs, 0) {
			return chans
		}
	}

	if v := int(c.Enable.Get(regs)); v < len(c.Channels) {
		chans[hwdefs.Primary].Enabled = c.Channels[v].Primary
		chans[hwdefs.Secondary].Enabled = c.Channels[v].Secondary
	}
	return chans
}

// Apply disables both channels, assigns their base addresses then enables
// them as decoded. No enable state of a previous configuration survives.
func (c *IDEConfig) Apply(ide IDE, regs hwio.Regs) {
	chans := c.Decode(regs)

	ide.DisableChannel(hwdefs.Primary)
	ide.DisableChannel(hwdefs.Secondary)
	for i, ch := range chans {
		ide.SetBase(hwdefs.Channel(i), ch.Cmd)
		ide.SetSide(hwdefs.Channel(i), ch.Ctl)
	}
	for i, ch := range chans {
		log.ModIDE.DebugZ("ide channel").
			Stringer("channel", hwdefs.Channel(i)).
			Bool("enabled", ch.Enabled).
			Port("cmd", ch.Cmd).
			Port("ctl", ch.Ctl).
			End()
		if ch.Enabled {
			ide.EnableChannel(hwdefs.Channel(i))
		}
	}
}
