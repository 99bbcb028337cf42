package ui

// iconBytes is a minimal 1x1 ICO used as the tray icon placeholder until the
// real artwork lands.
var iconBytes = []byte{
	0x00, 0x00, 0x01, 0x00, 0x01, 0x00, // ICONDIR: reserved, type 1, one image
	0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00, // 1x1, 32bpp
	0x30, 0x00, 0x00, 0x00, 0x16, 0x00, 0x00, 0x00, // 48 bytes at offset 22
	// BITMAPINFOHEADER (height doubled for the AND mask)
	0x28, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	// one BGRA pixel
	0x8c, 0x3f, 0xe4, 0xff,
	// AND mask
	0x00, 0x00, 0x00, 0x00,
}
