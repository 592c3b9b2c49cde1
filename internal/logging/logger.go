package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает имя уровня без учёта регистра
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger представляет логгер компонента с выводом в консоль и, опционально, в файл
type Logger struct {
	component       string
	consoleLogger   *log.Logger
	fileLogger      *log.Logger
	file            *os.File
	minConsoleLevel LogLevel
	minFileLevel    LogLevel
}

// Логгер по умолчанию: пишет в stdout, пока не вызван InitDefaultLogger
var defaultLogger = &Logger{
	component:       "default",
	consoleLogger:   log.New(os.Stdout, "", log.LstdFlags),
	minConsoleLevel: INFO,
	minFileLevel:    TRACE,
}

// NewLogger создаёт консольный логгер компонента
func NewLogger(component string) (*Logger, error) {
	if component == "" {
		return nil, fmt.Errorf("component name is empty")
	}
	return &Logger{
		component:       component,
		consoleLogger:   log.New(os.Stdout, "", log.LstdFlags),
		minConsoleLevel: INFO,
		minFileLevel:    TRACE,
	}, nil
}

// NewWriterLogger создаёт логгер, пишущий в произвольный writer
func NewWriterLogger(component string, w io.Writer, level LogLevel) *Logger {
	return &Logger{
		component:       component,
		consoleLogger:   log.New(w, "", 0),
		minConsoleLevel: level,
		minFileLevel:    level,
	}
}

// EnableFile включает запись всех уровней в файл logs/<component>_<timestamp>.log
func (l *Logger) EnableFile(dir string) error {
	// Создаем директорию для логов
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", dir, err)
	}

	// Создаем файл для логов с временной меткой
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.log", l.component, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	l.file = file
	l.fileLogger = log.New(file, "", log.LstdFlags)
	return nil
}

// SetLevel устанавливает минимальный уровень консольного вывода
func (l *Logger) SetLevel(level LogLevel) {
	l.minConsoleLevel = level
}

// Enabled сообщает, попадёт ли сообщение уровня level хоть в один вывод
func (l *Logger) Enabled(level LogLevel) bool {
	if level >= l.minConsoleLevel {
		return true
	}
	return l.fileLogger != nil && level >= l.minFileLevel
}

// Close закрывает файл логов, если он открыт
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

func (l *Logger) Trace(format string, args ...interface{}) { l.logMessage(TRACE, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logMessage(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logMessage(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logMessage(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.logMessage(ERROR, format, args...) }

// logMessage внутренняя функция для логирования
func (l *Logger) logMessage(level LogLevel, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	message := fmt.Sprintf("[%s] [%s] %s", level.String(), l.component, fmt.Sprintf(format, args...))

	if l.fileLogger != nil && level >= l.minFileLevel {
		l.fileLogger.Println(message)
	}

	if level >= l.minConsoleLevel {
		l.consoleLogger.Println(message)
	}
}

// InitDefaultLogger инициализирует логгер по умолчанию
func InitDefaultLogger(component string, level LogLevel, withFile bool) error {
	logger, err := NewLogger(component)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	if withFile {
		if err := logger.EnableFile("logs"); err != nil {
			return err
		}
	}

	defaultLogger = logger
	return nil
}

// CloseDefaultLogger закрывает логгер по умолчанию
func CloseDefaultLogger() {
	if defaultLogger != nil {
		defaultLogger.Close()
	}
}

// Default возвращает логгер по умолчанию
func Default() *Logger {
	return defaultLogger
}

// Trace логирует сообщение уровня TRACE
func Trace(format string, args ...interface{}) {
	defaultLogger.logMessage(TRACE, format, args...)
}

// Debug логирует сообщение уровня DEBUG
func Debug(format string, args ...interface{}) {
	defaultLogger.logMessage(DEBUG, format, args...)
}

// Info логирует сообщение уровня INFO
func Info(format string, args ...interface{}) {
	defaultLogger.logMessage(INFO, format, args...)
}

// Warn логирует сообщение уровня WARN
func Warn(format string, args ...interface{}) {
	defaultLogger.logMessage(WARN, format, args...)
}

// Error логирует сообщение уровня ERROR
func Error(format string, args ...interface{}) {
	defaultLogger.logMessage(ERROR, format, args...)
}
