package camera

import "strings"

// CalibrationSiblingName is the fixed last segment of a calibration topic.
const CalibrationSiblingName = "calibration"

// CalibrationTopic derives the calibration topic for an image topic by
// replacing the last path segment with the fixed sibling name:
// "/cam/image_raw" -> "/cam/calibration". The transformation is
// deterministic and idempotent, so a subscriber can locate the calibration
// stream from the image topic alone.
func CalibrationTopic(imageTopic string) string {
	idx := strings.LastIndex(imageTopic, "/")
	if idx < 0 {
		return CalibrationSiblingName
	}
	return imageTopic[:idx+1] + CalibrationSiblingName
}
