package conf

type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Tutor  *Tutor  `json:"tutor"`
}

type Server struct {
	Http *HTTP `json:"http"`
	Grpc *GRPC `json:"grpc"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type GRPC struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Data struct {
	Database *Database `json:"database"`
}

// Database Source 为空时不启用持久化
type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Tutor struct {
	Llm         *LLM         `json:"llm"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	BaseUrl    string `json:"base_url"`
	ApiKey     string `json:"api_key"`
	Model      string `json:"model"`
	Timeout    string `json:"timeout"`
	MaxRetries int32  `json:"max_retries"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
