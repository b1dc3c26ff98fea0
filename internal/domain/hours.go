package domain

// BusinessHours рабочие часы мастерской, неизменяемая конфигурация
// Инвариант: OpenHour < CloseHour (проверяется при старте сервиса)
type BusinessHours struct {
	OpenHour               int
	CloseHour              int
	SlotGranularityMinutes int
}

// SlotCount returns the number of bookable slots in a business day
func (h BusinessHours) SlotCount() int {
	return h.CloseHour - h.OpenHour
}
