package weather

// dayRule is one step of the day-level icon chain. Rules are evaluated top
// down and the first match wins.
type dayRule struct {
	match func(maxRain float64, cloud *float64) bool
	icon  Icon
}

var dayRules = []dayRule{
	{func(r float64, _ *float64) bool { return r >= 8 }, IconRain},
	{func(r float64, _ *float64) bool { return r >= 2 }, IconLightRain},
	{func(_ float64, c *float64) bool { return c != nil && *c >= 75 }, IconCloudy},
	{func(_ float64, c *float64) bool { return c != nil && *c >= 40 }, IconPartlyCloudy},
	{func(_ float64, c *float64) bool { return c != nil }, IconSunny},
	// No cloud evidence: rain-only thresholds.
	{func(r float64, _ *float64) bool { return r >= 8 }, IconRain},
	{func(r float64, _ *float64) bool { return r >= 3 }, IconLightRain},
	{func(float64, *float64) bool { return true }, IconSunny},
}

// ClassifyDay maps a day's maximum rain (mm) and average cloud cover (%, nil
// when unknown) to an icon.
func ClassifyDay(maxRainMm float64, avgCloudPct *float64) Icon {
	for _, r := range dayRules {
		if r.match(maxRainMm, avgCloudPct) {
			return r.icon
		}
	}
	return IconSunny
}

type hourRule struct {
	match func(cloud, rain *float64) bool
	icon  Icon
}

var hourRules = []hourRule{
	{func(_, r *float64) bool { return r != nil && *r > 0.4 }, IconRain},
	{func(c, _ *float64) bool { return c != nil && *c >= 80 }, IconCloudy},
	{func(c, _ *float64) bool { return c != nil && *c >= 40 }, IconPartlyCloudy},
}

// ClassifyHour maps one hourly sample to an icon. Missing values count as no
// evidence.
func ClassifyHour(cloudPct, rainMm *float64) Icon {
	for _, r := range hourRules {
		if r.match(cloudPct, rainMm) {
			return r.icon
		}
	}
	return IconSunny
}
