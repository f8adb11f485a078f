package analytics

type DataCollectorConfig struct {
	FileName      string
	CollectorType DataCollectorType
}

type DataCollectorType string

const LOG_FILE_DATA_COLLECTOR DataCollectorType = "LOG_FILE_DATA_COLLECTOR"

type ConfigDataCollector interface {
	RecordChange(entity string, templateId string, entityId string, action string, user string)
	RecordEvaluation(templateId string, matched bool, groupCount int)
}

var configCollector ConfigDataCollector

func InitDataCollector(config DataCollectorConfig) error {
	switch config.CollectorType {
	case LOG_FILE_DATA_COLLECTOR:
		c, err := NewLogFileDataCollector(config.FileName)
		if err != nil {
			return err
		}
		configCollector = c
	}
	return nil
}

func RecordChange(entity string, templateId string, entityId string, action string, user string) {
	if configCollector == nil {
		return
	}
	configCollector.RecordChange(entity, templateId, entityId, action, user)
}

func RecordEvaluation(templateId string, matched bool, groupCount int) {
	if configCollector == nil {
		return
	}
	configCollector.RecordEvaluation(templateId, matched, groupCount)
}
