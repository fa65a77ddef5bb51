package audio

import (
	"encoding/binary"
)

// oggCrcTable is the CRC-32 variant Ogg pages use (polynomial 0x04C11DB7,
// not the same table as hash/crc32's IEEE polynomial), computed once.
var oggCrcTable = func() [256]uint32 {
	var table [256]uint32
	const poly = 0x04C11DB7
	for i := range table {
		crc := uint32(i) << 24
		for bit := 0; bit < 8; bit++ {
			if crc&0x80000000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}()

func oggChecksum(data []byte) uint32 {
	var crc uint32
	for _, b := range data {
		crc = (crc << 8) ^ oggCrcTable[byte(crc>>24)^b]
	}
	return crc
}

// streamSerial is the fixed Ogg stream serial number the remuxer always
// uses, matching the original remuxer's hardcoded value.
const streamSerial = 42

// RemuxOpusToOgg wraps raw Opus packets (identification header already
// stripped out, one entry per decoded frame) into a standard Ogg/Opus
// stream: an OpusHead page, an OpusTags page, then one page per packet with
// granulepos = frame_index * frameSamples, the last page flagged
// end-of-stream.
func RemuxOpusToOgg(info Info, packets [][]byte) []byte {
	var out []byte
	var pageSeq uint32

	writePage := func(segments [][]byte, granulepos int64, headerType byte) {
		page := buildOggPage(streamSerial, pageSeq, granulepos, headerType, segments)
		out = append(out, page...)
		pageSeq++
	}

	writePage([][]byte{opusHeadPacket(info)}, 0, oggHeaderBOS)
	writePage([][]byte{opusTagsPacket()}, 0, 0)

	for i, pkt := range packets {
		headerType := byte(0)
		if i == len(packets)-1 {
			headerType = oggHeaderEOS
		}
		granule := int64(i+1) * int64(info.FrameSamples)
		writePage([][]byte{pkt}, granule, headerType)
	}

	return out
}

const (
	oggHeaderBOS = 0x02
	oggHeaderEOS = 0x04
)

func opusHeadPacket(info Info) []byte {
	buf := make([]byte, 19)
	copy(buf[0:8], "OpusHead")
	buf[8] = 1 // version
	buf[9] = byte(info.ChannelCount)
	binary.LittleEndian.PutUint16(buf[10:12], uint16(info.PreSkip))
	binary.LittleEndian.PutUint32(buf[12:16], info.SampleRate)
	binary.LittleEndian.PutUint16(buf[16:18], 0) // output gain
	buf[18] = 0                                  // mapping family
	return buf
}

func opusTagsPacket() []byte {
	vendor := "sdu remuxer"
	buf := make([]byte, 0, 8+4+len(vendor)+4)
	buf = append(buf, "OpusTags"...)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(vendor)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, vendor...)
	binary.LittleEndian.PutUint32(lenBuf[:], 0) // zero user comments
	buf = append(buf, lenBuf[:]...)
	return buf
}

// buildOggPage assembles one physical Ogg page from a list of packet
// segments (here always exactly one packet per page), lacing it into
// 255-byte segments per the Ogg framing spec and computing the page's
// CRC32 with the checksum field itself zeroed during the calculation.
func buildOggPage(serial uint32, seq uint32, granule int64, headerType byte, segments [][]byte) []byte {
	var lacing []byte
	var body []byte
	for _, seg := range segments {
		n := len(seg)
		for n >= 255 {
			lacing = append(lacing, 255)
			n -= 255
		}
		lacing = append(lacing, byte(n))
		body = append(body, seg...)
	}

	header := make([]byte, 27)
	copy(header[0:4], "OggS")
	header[4] = 0 // stream structure version
	header[5] = headerType
	binary.LittleEndian.PutUint64(header[6:14], uint64(granule))
	binary.LittleEndian.PutUint32(header[14:18], serial)
	binary.LittleEndian.PutUint32(header[18:22], seq)
	binary.LittleEndian.PutUint32(header[22:26], 0) // checksum placeholder
	header[26] = byte(len(lacing))

	page := append(header, lacing...)
	page = append(page, body...)

	crc := oggChecksum(page)
	binary.LittleEndian.PutUint32(page[22:26], crc)
	return page
}
