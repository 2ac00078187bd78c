// Package docs Velo Paris Dashboard API.
//
// Дашборд по данным постоянных велосчётчиков Парижа.
// Таблица показаний загружается один раз при старте (CSV или PostgreSQL),
// все представления считаются из неё и при наличии Redis кешируются по версии таблицы.
//
// Основные возможности:
// - HTML страница дашборда (введение, обзор данных, визуализация)
// - Описания графиков и карт для выпадающего списка и выбора периода
// - Агрегаты: по дням, годам установки, счётчикам, времени суток, месяцам, дням недели
// - Прогрев кеша представлений через Redis Stream
//
// Спецификация генерируется командой swag init -g cmd/api/main.go и регистрируется в docs.go.
package docs
