package metadata

import (
	"os"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// exifTagNames resolves numeric EXIF tag IDs to their standard names.
// IDs not in the table pass through with the numeric ID as the key.
var exifTagNames = map[uint16]string{
	0x0100: "ImageWidth",
	0x0101: "ImageLength",
	0x0102: "BitsPerSample",
	0x010e: "ImageDescription",
	0x010f: "Make",
	0x0110: "Model",
	0x0112: "Orientation",
	0x011a: "XResolution",
	0x011b: "YResolution",
	0x0128: "ResolutionUnit",
	0x0131: "Software",
	0x0132: "DateTime",
	0x013b: "Artist",
	0x8298: "Copyright",
	0x829a: "ExposureTime",
	0x829d: "FNumber",
	0x8769: "ExifOffset",
	0x8822: "ExposureProgram",
	0x8825: "GPSInfo",
	0x8827: "ISOSpeedRatings",
	0x9003: "DateTimeOriginal",
	0x9004: "DateTimeDigitized",
	0x9201: "ShutterSpeedValue",
	0x9202: "ApertureValue",
	0x9204: "ExposureBiasValue",
	0x9207: "MeteringMode",
	0x9209: "Flash",
	0x920a: "FocalLength",
	0xa001: "ColorSpace",
	0xa002: "PixelXDimension",
	0xa003: "PixelYDimension",
	0xa402: "ExposureMode",
	0xa403: "WhiteBalance",
	0xa406: "SceneCaptureType",
}

func (e *Extractor) imageMetadata(path string) map[string]string {
	f, err := os.Open(path)
	if err != nil {
		e.logger.Warn("image metadata open failed", "path", path, "error", err)
		return map[string]string{"error": err.Error()}
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		e.logger.Warn("exif decode failed", "path", path, "error", err)
		return map[string]string{"error": err.Error()}
	}

	out := map[string]string{}
	for _, dir := range x.Tiff.Dirs {
		for _, tag := range dir.Tags {
			name, ok := exifTagNames[tag.Id]
			if !ok {
				name = strconv.Itoa(int(tag.Id))
			}
			out[name] = strings.Trim(tag.String(), `"`)
		}
	}
	return out
}
